package repository

import (
	"testing"
	"time"

	"lifeos_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

func TestFindRecentByUserReturnsAscending(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSessionRepository(gdb)

	now := time.Now()
	// 数据库按 recorded_at DESC 返回
	rows := sqlmock.NewRows([]string{"id", "user_id", "recorded_at", "scores", "completed"}).
		AddRow(3, 1, now, []byte(`{"mind":70}`), true).
		AddRow(2, 1, now.Add(-24*time.Hour), []byte(`{"mind":65}`), true).
		AddRow(1, 1, now.Add(-48*time.Hour), []byte(`{"mind":60}`), true)

	mock.ExpectQuery("SELECT .* FROM `wellness_sessions`").
		WithArgs(1, 3).
		WillReturnRows(rows)

	sessions, err := repo.FindRecentByUser(1, 3)
	require.NoError(t, err)
	require.Len(t, sessions, 3)

	// 返回结果应为时间升序
	assert.Equal(t, uint(1), sessions[0].ID)
	assert.Equal(t, uint(3), sessions[2].ID)
	assert.True(t, sessions[0].RecordedAt.Before(sessions[1].RecordedAt))
	assert.True(t, sessions[1].RecordedAt.Before(sessions[2].RecordedAt))

	assert.Equal(t, 60.0, sessions[0].Scores["mind"])
	assert.Equal(t, 70.0, sessions[2].Scores["mind"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRateByUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSessionRepository(gdb)

	rows := sqlmock.NewRows([]string{"total", "completed"}).AddRow(10, 8)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) as total, SUM\\(CASE WHEN completed = true THEN 1 ELSE 0 END\\) as completed FROM `wellness_sessions`").
		WithArgs(1).
		WillReturnRows(rows)

	rate, err := repo.CompletionRateByUser(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, rate, 1e-9)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRateByUserNoSessions(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSessionRepository(gdb)

	rows := sqlmock.NewRows([]string{"total", "completed"}).AddRow(0, 0)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) as total").
		WithArgs(1).
		WillReturnRows(rows)

	rate, err := repo.CompletionRateByUser(1)
	require.NoError(t, err)
	assert.Zero(t, rate)
}

func TestCountByUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewSessionRepository(gdb)

	rows := sqlmock.NewRows([]string{"count(*)"}).AddRow(42)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `wellness_sessions`").
		WithArgs(1).
		WillReturnRows(rows)

	count, err := repo.CountByUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestSuccessRateByCategory(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewRecommendationRepository(gdb)

	rows := sqlmock.NewRows([]string{"category", "rate", "resolved"}).
		AddRow("mind", 0.75, 4).
		AddRow("physical", 1.0, 2)

	mock.ExpectQuery("SELECT category, AVG\\(CASE WHEN outcome = 'completed' THEN 1.0 ELSE 0.0 END\\) as rate").
		WithArgs(1, string(model.OutcomePending)).
		WillReturnRows(rows)

	rates, err := repo.SuccessRateByCategory(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"mind": 0.75, "physical": 1.0}, rates)
}
