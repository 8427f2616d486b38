package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lifeos_backend/internal/model"
)

func record(ts time.Time) model.LearningRecord {
	return model.LearningRecord{Timestamp: ts}
}

func TestHistoryStoreBatchTrim(t *testing.T) {
	s := NewHistoryStore(200, 100)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	// 正好 200 条不触发裁剪
	for i := 0; i < 200; i++ {
		s.Append(record(base.Add(time.Duration(i) * time.Minute)))
	}
	assert.Equal(t, 200, s.Len())

	// 第 201 条触发批量裁剪到最近 100 条
	s.Append(record(base.Add(200 * time.Minute)))
	assert.Equal(t, 100, s.Len())

	snapshot := s.Snapshot()
	assert.Equal(t, base.Add(101*time.Minute), snapshot[0].Timestamp)
	assert.Equal(t, base.Add(200*time.Minute), snapshot[len(snapshot)-1].Timestamp)
}

func TestHistoryStoreSnapshotIsCopy(t *testing.T) {
	s := NewHistoryStore(200, 100)
	s.Append(record(time.Now()))

	snapshot := s.Snapshot()
	snapshot[0].Timestamp = time.Time{}

	assert.False(t, s.Snapshot()[0].Timestamp.IsZero())
}

func TestHistoryStoreStatsBuckets(t *testing.T) {
	s := NewHistoryStore(200, 100)
	assert.Equal(t, model.HistoryStats{Count: 0, Maturity: "warming_up"}, s.Stats())

	for i := 0; i < 10; i++ {
		s.Append(record(time.Now()))
	}
	assert.Equal(t, "calibrating", s.Stats().Maturity)

	for i := 0; i < 40; i++ {
		s.Append(record(time.Now()))
	}
	assert.Equal(t, "established", s.Stats().Maturity)
}

func TestHistoryStoreConcurrentAppend(t *testing.T) {
	s := NewHistoryStore(200, 100)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Append(record(time.Now()))
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	// 400 次追加经过两轮裁剪后必然不超过 cap
	assert.LessOrEqual(t, s.Len(), 200)
	assert.Greater(t, s.Len(), 0)
}
