package engine

import (
	"sync"

	"lifeos_backend/internal/model"
)

// HistoryStore 有界的分析留痕缓冲区。每次 Analyze 追加一条记录，
// 超过 cap 后批量裁剪到最近 trim 条（批量裁剪而非逐条淘汰）。
// 只用于回看和洞察文案，估计器和分类器不读取它。
type HistoryStore struct {
	mu      sync.Mutex
	records []model.LearningRecord
	cap     int
	trim    int
}

func NewHistoryStore(cap, trim int) *HistoryStore {
	return &HistoryStore{
		records: make([]model.LearningRecord, 0, trim),
		cap:     cap,
		trim:    trim,
	}
}

func (s *HistoryStore) Append(record model.LearningRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	if len(s.records) > s.cap {
		kept := make([]model.LearningRecord, s.trim)
		copy(kept, s.records[len(s.records)-s.trim:])
		s.records = kept
	}
}

func (s *HistoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Snapshot 返回记录的副本，读方可以在锁外安全遍历
func (s *HistoryStore) Snapshot() []model.LearningRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LearningRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Stats 描述性统计：记录数和置信成熟度档位
func (s *HistoryStore) Stats() model.HistoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	maturity := "warming_up"
	switch {
	case n >= 50:
		maturity = "established"
	case n >= 10:
		maturity = "calibrating"
	}

	return model.HistoryStats{Count: n, Maturity: maturity}
}
