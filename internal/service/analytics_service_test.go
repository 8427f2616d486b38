package service

import (
	"encoding/json"
	"testing"

	"lifeos_backend/internal/engine"
	"lifeos_backend/internal/model"
	"lifeos_backend/internal/repository"
	"lifeos_backend/internal/util"
	"lifeos_backend/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	// 测试中不初始化完整日志栈
	logger.Log = zap.NewNop()
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func newTestService(t *testing.T, gdb *gorm.DB, rdb *redis.Client) *AnalyticsService {
	t.Helper()

	return NewAnalyticsService(
		repository.NewSessionRepository(gdb),
		repository.NewCheckinRepository(gdb),
		repository.NewUserRepository(gdb),
		repository.NewRecommendationRepository(gdb),
		repository.NewCategoryRepository(gdb),
		engine.New(engine.DefaultConfig()),
		rdb,
	)
}

func TestAnalyzeReturnsCachedResult(t *testing.T) {
	rdb, mr := newTestRedis(t)
	// 命中缓存时不应触碰数据库
	svc := newTestService(t, nil, rdb)

	cached := model.AnalysisResult{
		Patterns: []model.Pattern{
			{Category: "mind", Score: 70, Trend: model.TrendStable, Consistency: 1.0, Stability: 0.5},
		},
		Recommendations: []model.Recommendation{},
		GeneratedAt:     "2026-08-01T09:00:00Z",
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	mr.Set(analysisCacheKey(7), string(data))

	result, err := svc.Analyze(7)
	require.NoError(t, err)
	assert.Equal(t, cached.GeneratedAt, result.GeneratedAt)
	require.Len(t, result.Patterns, 1)
	assert.Equal(t, "mind", result.Patterns[0].Category)
}

func TestRecordSessionInvalidatesCache(t *testing.T) {
	rdb, mr := newTestRedis(t)
	gdb, mock := newTestDB(t)
	svc := newTestService(t, gdb, rdb)

	mr.Set(analysisCacheKey(7), "stale")

	categoryRows := sqlmock.NewRows([]string{"id", "code", "name", "enabled"}).
		AddRow(1, "physical", "身体", true).
		AddRow(2, "mind", "心智", true)
	mock.ExpectQuery("SELECT .* FROM `categories`").WillReturnRows(categoryRows)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `wellness_sessions`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	session, err := svc.RecordSession(7, map[string]float64{"physical": 82}, "morning run", 10)
	require.NoError(t, err)
	assert.Equal(t, uint(7), session.UserID)
	assert.True(t, session.Completed)

	assert.False(t, mr.Exists(analysisCacheKey(7)), "stale analysis cache should be dropped")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSessionRejectsOutOfRangeScore(t *testing.T) {
	rdb, _ := newTestRedis(t)
	gdb, mock := newTestDB(t)
	svc := newTestService(t, gdb, rdb)

	categoryRows := sqlmock.NewRows([]string{"id", "code", "name", "enabled"}).
		AddRow(1, "physical", "身体", true)
	mock.ExpectQuery("SELECT .* FROM `categories`").WillReturnRows(categoryRows)

	_, err := svc.RecordSession(7, map[string]float64{"physical": 120}, "", 0)
	assert.ErrorIs(t, err, util.ErrInvalidScore)
}

func TestRecordSessionRejectsUnknownCategory(t *testing.T) {
	rdb, _ := newTestRedis(t)
	gdb, mock := newTestDB(t)
	svc := newTestService(t, gdb, rdb)

	categoryRows := sqlmock.NewRows([]string{"id", "code", "name", "enabled"}).
		AddRow(1, "physical", "身体", true)
	mock.ExpectQuery("SELECT .* FROM `categories`").WillReturnRows(categoryRows)

	_, err := svc.RecordSession(7, map[string]float64{"finance": 50}, "", 0)
	assert.ErrorIs(t, err, util.ErrCategoryNotFound)
}

func TestRecordSessionRejectsEmptyScores(t *testing.T) {
	rdb, _ := newTestRedis(t)
	svc := newTestService(t, nil, rdb)

	_, err := svc.RecordSession(7, nil, "", 0)
	assert.ErrorIs(t, err, util.ErrInvalidScore)
}
