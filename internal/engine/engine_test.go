package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeos_backend/internal/model"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	e := New(DefaultConfig())

	recs := e.Analyze(nil, nil, model.UserContext{})
	assert.Empty(t, recs)

	recs = e.Analyze(map[string]float64{}, []model.SessionScores{}, model.UserContext{})
	assert.Empty(t, recs)

	// 空输入同样留痕
	assert.Equal(t, 2, e.HistoryStats().Count)
}

func TestAnalyzeDeterminism(t *testing.T) {
	scores := map[string]float64{"physical": 48, "mind": 72, "emotional": 88, "social": 91, "growth": 63}
	history := append(sessionSeries("physical", 60, 55, 52, 48),
		sessionSeries("social", 90, 90, 91, 91, 91, 91)...)
	ctx := model.UserContext{
		TotalSessions:       80,
		CurrentStreak:       12,
		CompletionRate:      0.85,
		CategoryPreferences: []string{"mind"},
		PreferredTime:       "morning",
	}

	a := New(DefaultConfig()).Analyze(scores, history, ctx)
	b := New(DefaultConfig()).Analyze(scores, history, ctx)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i])
	}
}

func TestExtractPatternsDeterministicOrder(t *testing.T) {
	e := New(DefaultConfig())
	scores := map[string]float64{"social": 70, "mind": 60, "physical": 80}

	patterns := e.ExtractPatterns(scores, nil)
	require.Len(t, patterns, 3)
	assert.Equal(t, "mind", patterns[0].Category)
	assert.Equal(t, "physical", patterns[1].Category)
	assert.Equal(t, "social", patterns[2].Category)
}

func TestExtractPatternsInsufficientDataDefaults(t *testing.T) {
	e := New(DefaultConfig())

	patterns := e.ExtractPatterns(map[string]float64{"mind": 75}, sessionSeries("mind", 75, 80))
	require.Len(t, patterns, 1)
	p := patterns[0]
	assert.Equal(t, model.TrendStable, p.Trend)
	assert.Equal(t, 0.5, p.Stability) // 少于 3 个观测恒为 0.5
	assert.InDelta(t, 5.0, p.Velocity, 1e-9)
}

func TestExtractPatternsWindowBound(t *testing.T) {
	// 60 个观测：前 40 个强烈下跌，最近 20 个稳步上升。
	// 窗口裁剪后趋势必须按最近 20 个判定。
	series := make([]float64, 0, 60)
	for i := 0; i < 40; i++ {
		series = append(series, float64(95-i*2))
	}
	for i := 0; i < 20; i++ {
		series = append(series, float64(20+i*3))
	}

	e := New(DefaultConfig())
	patterns := e.ExtractPatterns(map[string]float64{"mind": 77}, sessionSeries("mind", series...))
	require.Len(t, patterns, 1)
	assert.Equal(t, model.TrendImproving, patterns[0].Trend)
}

func TestScoreClampedIntoRange(t *testing.T) {
	e := New(DefaultConfig())

	patterns := e.ExtractPatterns(map[string]float64{"mind": 140, "physical": -5}, nil)
	require.Len(t, patterns, 2)
	assert.Equal(t, 100.0, patterns[0].Score) // mind
	assert.Equal(t, 0.0, patterns[1].Score)   // physical
}

func TestInsights(t *testing.T) {
	e := New(DefaultConfig())

	// 上限两条
	full := e.Insights(model.UserContext{CurrentStreak: 10, CompletionRate: 0.9, TotalSessions: 100})
	assert.Len(t, full, 2)

	some := e.Insights(model.UserContext{CurrentStreak: 3})
	assert.Len(t, some, 1)

	none := e.Insights(model.UserContext{})
	assert.Empty(t, none)
}

func TestConfigSanitize(t *testing.T) {
	e := New(Config{})
	assert.Equal(t, DefaultConfig(), e.cfg)

	custom := New(Config{PatternWindow: 30, HistoryCap: 10, HistoryTrim: 50})
	assert.Equal(t, 30, custom.cfg.PatternWindow)
	// trim 不允许超过 cap
	assert.Equal(t, 10, custom.cfg.HistoryTrim)
}
