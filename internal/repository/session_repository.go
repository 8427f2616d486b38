package repository

import (
	"lifeos_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.WellnessSession) error {
	return r.DB.Create(session).Error
}

// FindRecentByUser 获取用户最近 limit 次会话，按时间升序返回，
// 方便直接作为引擎的历史输入
func (r *SessionRepository) FindRecentByUser(userID uint, limit int) ([]model.WellnessSession, error) {
	var sessions []model.WellnessSession
	err := r.DB.Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	// 反转为时间升序
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	return sessions, nil
}

// FindLatestByUser 获取用户最近一次会话
func (r *SessionRepository) FindLatestByUser(userID uint) (*model.WellnessSession, error) {
	var session model.WellnessSession
	err := r.DB.Where("user_id = ?", userID).Order("recorded_at DESC").First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CountByUser 用户的会话总数
func (r *SessionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.WellnessSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CompletionRateByUser 已完成会话占比，没有会话时返回 0
func (r *SessionRepository) CompletionRateByUser(userID uint) (float64, error) {
	var stats struct {
		Total     int64 `gorm:"column:total"`
		Completed int64 `gorm:"column:completed"`
	}

	err := r.DB.Model(&model.WellnessSession{}).
		Select("COUNT(*) as total, SUM(CASE WHEN completed = true THEN 1 ELSE 0 END) as completed").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return 0, err
	}
	if stats.Total == 0 {
		return 0, nil
	}
	return float64(stats.Completed) / float64(stats.Total), nil
}
