package service

import (
	"time"

	"lifeos_backend/internal/model"
	"lifeos_backend/internal/repository"
	"lifeos_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	CheckinRepo *repository.CheckinRepository
}

func NewUserService(userRepo *repository.UserRepository, checkinRepo *repository.CheckinRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		CheckinRepo: checkinRepo,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfileInput 个人资料可修改字段，零值字段不更新
type UpdateProfileInput struct {
	Name                string   `json:"name"`
	PreferredTime       string   `json:"preferredTime"`
	LearningStyle       string   `json:"learningStyle"`
	MotivationType      string   `json:"motivationType"`
	CategoryPreferences []string `json:"categoryPreferences"`
	Language            string   `json:"language"`
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.PreferredTime != "" {
		user.PreferredTime = input.PreferredTime
	}
	if input.LearningStyle != "" {
		user.LearningStyle = model.LearningStyle(input.LearningStyle)
	}
	if input.MotivationType != "" {
		user.MotivationType = model.MotivationType(input.MotivationType)
	}
	if input.CategoryPreferences != nil {
		user.CategoryPreferences = input.CategoryPreferences
	}
	if input.Language != "" {
		user.Language = input.Language
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatar string) error {
	return s.UserRepo.UpdateAvatar(userID, avatar)
}

// Checkin 执行每日打卡。同一天重复打卡返回错误，
// 昨天有打卡则连续天数 +1，否则重置为 1。
func (s *UserService) Checkin(userID uint) (*model.Checkin, error) {
	today := time.Now().Truncate(24 * time.Hour)

	if _, err := s.CheckinRepo.FindByUserAndDate(userID, today); err == nil {
		return nil, util.ErrAlreadyCheckedIn
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	streak := 1
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if err == nil && latest != nil {
		yesterday := today.AddDate(0, 0, -1)
		if latest.CheckinAt.Truncate(24 * time.Hour).Equal(yesterday) {
			streak = latest.StreakDays + 1
		}
	}

	checkin := &model.Checkin{
		UserID:     userID,
		CheckinAt:  today,
		StreakDays: streak,
	}
	if err := s.CheckinRepo.Create(checkin); err != nil {
		return nil, err
	}
	return checkin, nil
}

// CheckinStatus 返回今日是否已打卡及当前连续天数
func (s *UserService) CheckinStatus(userID uint) (bool, int, error) {
	today := time.Now().Truncate(24 * time.Hour)

	checkedIn := false
	if _, err := s.CheckinRepo.FindByUserAndDate(userID, today); err == nil {
		checkedIn = true
	}

	streak := 0
	latest, err := s.CheckinRepo.FindLatestByUser(userID)
	if err == nil && latest != nil {
		day := latest.CheckinAt.Truncate(24 * time.Hour)
		if day.Equal(today) || day.Equal(today.AddDate(0, 0, -1)) {
			streak = latest.StreakDays
		}
	}

	return checkedIn, streak, nil
}

func (s *UserService) TouchLastSeen(userID uint) {
	s.UserRepo.UpdateLastSeen(userID)
}
