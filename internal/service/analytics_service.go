package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lifeos_backend/internal/engine"
	"lifeos_backend/internal/model"
	"lifeos_backend/internal/repository"
	"lifeos_backend/internal/util"
	"lifeos_backend/pkg/logger"
	"lifeos_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AnalyticsService 行为分析编排层：拉取会话历史、组装用户上下文、
// 调用引擎并把结果落库。引擎本身无副作用，所有 IO 都在这一层。
type AnalyticsService struct {
	SessionRepo        *repository.SessionRepository
	CheckinRepo        *repository.CheckinRepository
	UserRepo           *repository.UserRepository
	RecommendationRepo *repository.RecommendationRepository
	CategoryRepo       *repository.CategoryRepository
	Engine             *engine.Engine
	Redis              *redis.Client
}

func NewAnalyticsService(
	sessionRepo *repository.SessionRepository,
	checkinRepo *repository.CheckinRepository,
	userRepo *repository.UserRepository,
	recommendationRepo *repository.RecommendationRepository,
	categoryRepo *repository.CategoryRepository,
	eng *engine.Engine,
	redisClient *redis.Client,
) *AnalyticsService {
	return &AnalyticsService{
		SessionRepo:        sessionRepo,
		CheckinRepo:        checkinRepo,
		UserRepo:           userRepo,
		RecommendationRepo: recommendationRepo,
		CategoryRepo:       categoryRepo,
		Engine:             eng,
		Redis:              redisClient,
	}
}

const (
	analysisCacheTTL    = 10 * time.Minute
	sessionHistoryLimit = 60
)

func analysisCacheKey(userID uint) string {
	return fmt.Sprintf("lifeos:analysis:%d", userID)
}

// RecordSession 记录一次自评会话。分值必须在 0-100，维度 code 必须是已启用的维度。
func (s *AnalyticsService) RecordSession(userID uint, scores map[string]float64, note string, duration int) (*model.WellnessSession, error) {
	if len(scores) == 0 {
		return nil, util.ErrInvalidScore
	}

	categories, err := s.CategoryRepo.ListEnabled()
	if err != nil {
		return nil, err
	}
	enabled := make(map[string]bool, len(categories))
	for _, c := range categories {
		enabled[c.Code] = true
	}

	for code, score := range scores {
		if score < 0 || score > 100 {
			return nil, util.ErrInvalidScore
		}
		if !enabled[code] {
			return nil, util.ErrCategoryNotFound
		}
	}

	session := &model.WellnessSession{
		UserID:     userID,
		RecordedAt: time.Now(),
		Scores:     scores,
		Note:       note,
		Completed:  true,
		Duration:   duration,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	// 新会话使缓存的分析结果失效
	s.invalidateAnalysisCache(userID)

	return session, nil
}

// Analyze 对用户最新状态执行一次完整分析，结果缓存 10 分钟。
// 引擎约定永不失败，这里只有 IO 错误会向上冒泡。
func (s *AnalyticsService) Analyze(userID uint) (*model.AnalysisResult, error) {
	ctx := context.Background()

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, analysisCacheKey(userID)).Result()
		if err == nil {
			var result model.AnalysisResult
			if json.Unmarshal([]byte(cached), &result) == nil {
				return &result, nil
			}
		}
	}

	sessions, err := s.SessionRepo.FindRecentByUser(userID, sessionHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]model.SessionScores, 0, len(sessions))
	for i := range sessions {
		history = append(history, sessions[i].Snapshot())
	}

	var latest map[string]float64
	if len(sessions) > 0 {
		latest = sessions[len(sessions)-1].Scores
	}

	userCtx, err := s.buildUserContext(userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	patterns := s.Engine.ExtractPatterns(latest, history)
	recommendations := s.Engine.Analyze(latest, history, userCtx)
	monitoring.ObserveAnalysis(len(recommendations), time.Since(start))

	if err := s.persistRecommendations(userID, recommendations); err != nil {
		logger.Log.Warn("持久化建议失败", zap.Uint("userID", userID), zap.Error(err))
	}

	result := &model.AnalysisResult{
		Patterns:        patterns,
		Recommendations: recommendations,
		GeneratedAt:     time.Now().Format(time.RFC3339),
	}

	if s.Redis != nil {
		if data, err := json.Marshal(result); err == nil {
			s.Redis.Set(ctx, analysisCacheKey(userID), data, analysisCacheTTL)
		}
	}

	return result, nil
}

// GetRecentSessions 返回用户最近的自评会话，按时间升序
func (s *AnalyticsService) GetRecentSessions(userID uint, limit int) ([]model.WellnessSession, error) {
	if limit <= 0 || limit > sessionHistoryLimit {
		limit = sessionHistoryLimit
	}
	return s.SessionRepo.FindRecentByUser(userID, limit)
}

// GetPatterns 只返回模式快照，不生成建议也不写历史
func (s *AnalyticsService) GetPatterns(userID uint) ([]model.Pattern, error) {
	sessions, err := s.SessionRepo.FindRecentByUser(userID, sessionHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]model.SessionScores, 0, len(sessions))
	for i := range sessions {
		history = append(history, sessions[i].Snapshot())
	}

	var latest map[string]float64
	if len(sessions) > 0 {
		latest = sessions[len(sessions)-1].Scores
	}

	return s.Engine.ExtractPatterns(latest, history), nil
}

// GetRecommendations 返回当前待执行的建议列表，按 confidence × successProbability 降序
func (s *AnalyticsService) GetRecommendations(userID uint) ([]model.StoredRecommendation, error) {
	return s.RecommendationRepo.ListPendingByUser(userID)
}

// RecordOutcome 记录用户对某条建议的反馈，completed/dismissed 会回流到后续分析
func (s *AnalyticsService) RecordOutcome(userID uint, recommendationID string, outcome model.OutcomeStatus) error {
	if outcome != model.OutcomeCompleted && outcome != model.OutcomeDismissed {
		return util.ErrRecommendationNotFound
	}

	if _, err := s.RecommendationRepo.FindByIDAndUser(recommendationID, userID); err != nil {
		return util.ErrRecommendationNotFound
	}

	if err := s.RecommendationRepo.UpdateOutcome(recommendationID, userID, outcome); err != nil {
		return err
	}

	// 反馈改变了 previousSuccess，上一次分析结果作废
	s.invalidateAnalysisCache(userID)
	return nil
}

// GetInsights 返回基于用户上下文的行为洞察，最多两条
func (s *AnalyticsService) GetInsights(userID uint) ([]string, error) {
	userCtx, err := s.buildUserContext(userID)
	if err != nil {
		return nil, err
	}
	return s.Engine.Insights(userCtx), nil
}

// GetOverview 返回用户的维度概览
func (s *AnalyticsService) GetOverview(userID uint) (*model.WellnessOverview, error) {
	total, err := s.SessionRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	overview := &model.WellnessOverview{
		TotalSessions: int(total),
		LatestScores:  map[string]float64{},
	}

	if checkin, err := s.CheckinRepo.FindLatestByUser(userID); err == nil && checkin != nil {
		overview.CurrentStreak = checkin.StreakDays
	}
	if checkins, err := s.CheckinRepo.GetCheckinCountByUser(userID); err == nil {
		overview.TotalCheckins = int(checkins)
	}

	latest, err := s.SessionRepo.FindLatestByUser(userID)
	if err == nil && latest != nil {
		overview.LatestScores = latest.Scores
		var sum float64
		for _, v := range latest.Scores {
			sum += v
		}
		if len(latest.Scores) > 0 {
			overview.AverageScore = sum / float64(len(latest.Scores))
		}
	}

	return overview, nil
}

// GetCategoryTrend 返回某维度的历史曲线和趋势判定
func (s *AnalyticsService) GetCategoryTrend(userID uint, category string) (*model.CategoryTrendResponse, error) {
	if _, err := s.CategoryRepo.FindByCode(category); err != nil {
		return nil, util.ErrCategoryNotFound
	}

	sessions, err := s.SessionRepo.FindRecentByUser(userID, sessionHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]model.SessionScores, 0, len(sessions))
	points := make([]model.CategoryTrendPoint, 0, len(sessions))
	for i := range sessions {
		history = append(history, sessions[i].Snapshot())
		if score, ok := sessions[i].Scores[category]; ok {
			points = append(points, model.CategoryTrendPoint{
				Date:  sessions[i].RecordedAt.Format(util.DateFormat),
				Score: score,
			})
		}
	}

	var latest map[string]float64
	if len(sessions) > 0 {
		latest = sessions[len(sessions)-1].Scores
	}

	trend := model.TrendStable
	for _, p := range s.Engine.ExtractPatterns(latest, history) {
		if p.Category == category {
			trend = p.Trend
			break
		}
	}

	return &model.CategoryTrendResponse{
		Category: category,
		Trend:    trend,
		Points:   points,
	}, nil
}

// EngineHistoryStats 引擎学习历史的描述性统计，管理端展示用
func (s *AnalyticsService) EngineHistoryStats() model.HistoryStats {
	return s.Engine.HistoryStats()
}

// buildUserContext 从用户、打卡、会话和建议反馈四路数据组装引擎上下文。
// 任何一路缺失都按零值降级，不阻断分析。
func (s *AnalyticsService) buildUserContext(userID uint) (model.UserContext, error) {
	userCtx := model.UserContext{
		PreviousSuccess: map[string]float64{},
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return userCtx, util.ErrUserNotFound
	}
	userCtx.PreferredTime = user.PreferredTime
	userCtx.CategoryPreferences = user.CategoryPreferences
	userCtx.LearningStyle = user.LearningStyle
	userCtx.MotivationType = user.MotivationType

	if total, err := s.SessionRepo.CountByUser(userID); err == nil {
		userCtx.TotalSessions = int(total)
	}
	if rate, err := s.SessionRepo.CompletionRateByUser(userID); err == nil {
		userCtx.CompletionRate = rate
	}
	if checkin, err := s.CheckinRepo.FindLatestByUser(userID); err == nil && checkin != nil {
		userCtx.CurrentStreak = checkin.StreakDays
	}
	if rates, err := s.RecommendationRepo.SuccessRateByCategory(userID); err == nil && rates != nil {
		userCtx.PreviousSuccess = rates
	}

	return userCtx, nil
}

func (s *AnalyticsService) persistRecommendations(userID uint, recs []model.Recommendation) error {
	stored := make([]model.StoredRecommendation, 0, len(recs))
	for _, r := range recs {
		stored = append(stored, model.StoredRecommendation{
			UUIDBase:           model.UUIDBase{ID: fmt.Sprintf("%s-%d", r.ID, userID)},
			UserID:             userID,
			Title:              r.Title,
			Description:        r.Description,
			Category:           r.Category,
			Priority:           r.Priority,
			Confidence:         r.Confidence,
			ActionPlan:         r.ActionPlan,
			EstimatedImpact:    r.EstimatedImpact,
			TimeToResult:       r.TimeToResult,
			Difficulty:         r.Difficulty,
			Archetype:          r.Archetype,
			PersonalizedReason: r.PersonalizedReason,
			ScientificBasis:    r.ScientificBasis,
			SuccessProbability: r.SuccessProbability,
			Outcome:            model.OutcomePending,
		})
	}
	return s.RecommendationRepo.ReplaceForUser(userID, stored)
}

func (s *AnalyticsService) invalidateAnalysisCache(userID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), analysisCacheKey(userID))
}
