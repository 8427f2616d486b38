package engine

import (
	"sort"
	"time"

	"lifeos_backend/internal/model"
)

// recentScores 从会话历史中提取某个维度最近 n 个观测，保持时间升序。
// 没有该维度记录的会话被跳过。
func recentScores(history []model.SessionScores, category string, n int) []float64 {
	scores := make([]float64, 0, len(history))
	for _, session := range history {
		if v, ok := session.Scores[category]; ok {
			scores = append(scores, v)
		}
	}
	return tail(scores, n)
}

// ExtractPatterns 为快照中出现的每个维度组装 Pattern。
// 维度按名称排序，保证相同输入下输出完全一致。
func (e *Engine) ExtractPatterns(scores map[string]float64, history []model.SessionScores) []model.Pattern {
	if len(scores) == 0 {
		return []model.Pattern{}
	}

	categories := make([]string, 0, len(scores))
	for c := range scores {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	now := time.Now()
	patterns := make([]model.Pattern, 0, len(categories))
	for _, category := range categories {
		series := recentScores(history, category, e.cfg.PatternWindow)

		patterns = append(patterns, model.Pattern{
			Category:    category,
			Score:       clamp(scores[category], 0, 100),
			Trend:       classifyTrend(series),
			Consistency: consistency(series),
			Velocity:    velocity(series, e.cfg.VelocityWindow),
			Stability:   stability(series, e.cfg.StabilityWindow),
			LastUpdated: now,
		})
	}

	return patterns
}
