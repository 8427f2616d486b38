package engine

import "lifeos_backend/internal/model"

// 斜率阈值：OLS 斜率超过 ±0.5 分/次 才视为方向性变化
const slopeThreshold = 0.5

// classifyTrend 对分数序列做最小二乘拟合并按斜率分类。
// 少于 3 个观测时数据不足，按约定返回 stable。
func classifyTrend(scores []float64) model.Trend {
	n := len(scores)
	if n < 3 {
		return model.TrendStable
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range scores {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return model.TrendStable
	}
	slope := (float64(n)*sumXY - sumX*sumY) / denom

	switch {
	case slope > slopeThreshold:
		return model.TrendImproving
	case slope < -slopeThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}
