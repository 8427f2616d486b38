package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeos_backend/internal/model"
)

// sessionSeries 把单维度分数序列包装成按时间升序的会话历史
func sessionSeries(category string, scores ...float64) []model.SessionScores {
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	history := make([]model.SessionScores, len(scores))
	for i, s := range scores {
		history[i] = model.SessionScores{
			RecordedAt: base.AddDate(0, 0, i),
			Scores:     map[string]float64{category: s},
		}
	}
	return history
}

func TestRecoveryScenarioDecliningMind(t *testing.T) {
	e := New(DefaultConfig())

	history := sessionSeries("mind", 70, 66, 62, 58, 55)
	recs := e.Analyze(map[string]float64{"mind": 55}, history, model.UserContext{})

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, model.ArchetypeRecovery, rec.Archetype)
	assert.Equal(t, "mind", rec.Category)
	assert.Equal(t, model.PriorityCritical, rec.Priority)
	assert.Equal(t, 0.92, rec.Confidence)
	assert.Equal(t, 25.0, rec.EstimatedImpact) // min(25, 90-55)
	assert.Equal(t, "1-2 weeks", rec.TimeToResult)
	assert.Len(t, rec.ActionPlan, 5)
}

func TestRecoveryPriorityHighAboveSixty(t *testing.T) {
	e := New(DefaultConfig())

	recs := e.Analyze(map[string]float64{"mind": 65}, nil, model.UserContext{})

	require.Len(t, recs, 1)
	assert.Equal(t, model.PriorityHigh, recs[0].Priority)
	assert.Equal(t, 25.0, recs[0].EstimatedImpact) // min(25, 90-65)
}

func TestMasteryAndBreakthroughScenario(t *testing.T) {
	e := New(DefaultConfig())

	categories := []string{"physical", "mind", "emotional", "social", "growth"}
	scores := make(map[string]float64, len(categories))
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	history := make([]model.SessionScores, 6)
	for i := range history {
		m := make(map[string]float64, len(categories))
		for _, c := range categories {
			m[c] = 90
		}
		history[i] = model.SessionScores{RecordedAt: base.AddDate(0, 0, i), Scores: m}
	}
	for _, c := range categories {
		scores[c] = 90
	}

	recs := e.Analyze(scores, history, model.UserContext{})

	// 每个维度一条 mastery 加一条跨维度 breakthrough，截断后剩 5 条。
	// 中性上下文下 mastery 的 rank (0.95×0.70) 高于 breakthrough (0.96×0.55)，
	// 所以被截断掉的是 breakthrough。
	require.Len(t, recs, 5)
	for _, rec := range recs {
		assert.Equal(t, model.ArchetypeMaintenance, rec.Archetype)
		assert.Equal(t, model.PriorityLow, rec.Priority)
		assert.Equal(t, 0.95, rec.Confidence)
		assert.Equal(t, 5.0, rec.EstimatedImpact)
	}

	// 提高截断上限验证 breakthrough 确实生成了
	cfg := DefaultConfig()
	cfg.MaxRecommendations = 10
	wide := New(cfg)
	all := wide.Analyze(scores, history, model.UserContext{})
	require.Len(t, all, 6)
	last := all[len(all)-1]
	assert.Equal(t, model.ArchetypeBreakthrough, last.Archetype)
	assert.Equal(t, "overall", last.Category)
	assert.Equal(t, model.PriorityCritical, last.Priority)
	assert.Equal(t, 0.96, last.Confidence)
	assert.Equal(t, 30.0, last.EstimatedImpact)
}

func TestOptimizationRule(t *testing.T) {
	e := New(DefaultConfig())

	history := sessionSeries("growth", 64, 68, 72, 76, 80)
	recs := e.Analyze(map[string]float64{"growth": 80}, history, model.UserContext{})

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, model.ArchetypeOptimization, rec.Archetype)
	assert.Equal(t, model.PriorityMedium, rec.Priority)
	assert.Equal(t, 0.88, rec.Confidence)
	assert.Equal(t, 15.0, rec.EstimatedImpact) // min(15, 95-80)
	assert.Equal(t, "2-4 weeks", rec.TimeToResult)
}

func TestConsistencyRuleFiresAlongsideRecovery(t *testing.T) {
	e := New(DefaultConfig())

	// 剧烈震荡且均值偏低：recovery 和 consistency 同时命中
	history := sessionSeries("emotional", 20, 90, 15, 95, 10, 85, 25)
	recs := e.Analyze(map[string]float64{"emotional": 25}, history, model.UserContext{})

	archetypes := make(map[model.Archetype]bool)
	for _, r := range recs {
		archetypes[r.Archetype] = true
	}
	assert.True(t, archetypes[model.ArchetypeRecovery])
	assert.True(t, archetypes[model.ArchetypeConsistency])
}

func TestRecommendationOrderingInvariant(t *testing.T) {
	e := New(DefaultConfig())

	scores := map[string]float64{
		"physical": 55, "mind": 65, "emotional": 40, "social": 92, "growth": 68,
	}
	history := append(sessionSeries("social", 90, 91, 92, 92, 92, 92),
		sessionSeries("emotional", 80, 20, 75, 30, 40)...)

	recs := e.Analyze(scores, history, model.UserContext{CompletionRate: 0.9})

	assert.LessOrEqual(t, len(recs), 5)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Rank(), recs[i].Rank())
	}
	for _, r := range recs {
		assert.Greater(t, r.Confidence, 0.6)
		assert.GreaterOrEqual(t, r.SuccessProbability, 0.40)
		assert.LessOrEqual(t, r.SuccessProbability, 0.98)
	}
}

func TestRecoveryPlanFallbackForUnknownCategory(t *testing.T) {
	e := New(DefaultConfig())

	// "finance" 不在策略表里，应使用默认恢复模板而不是失败
	recs := e.Analyze(map[string]float64{"finance": 45}, nil, model.UserContext{})

	require.Len(t, recs, 1)
	assert.Equal(t, model.ArchetypeRecovery, recs[0].Archetype)
	assert.Equal(t, defaultRecoveryPlan.Title, recs[0].Title)
	assert.Len(t, recs[0].ActionPlan, 5)
}

func TestRecommendationIDsUniquePerCall(t *testing.T) {
	e := New(DefaultConfig())

	scores := map[string]float64{"physical": 50, "mind": 55, "emotional": 60}
	recs := e.Analyze(scores, nil, model.UserContext{})

	seen := make(map[string]bool)
	for _, r := range recs {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}
