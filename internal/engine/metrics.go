package engine

import "math"

// consistency 基于总体标准差的稳定系数，1 - stdev/30，下限 0。
// 少于 2 个观测时没有波动证据，按约定返回 1。
func consistency(scores []float64) float64 {
	if len(scores) < 2 {
		return 1.0
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(scores))

	return math.Max(0, 1-math.Sqrt(variance)/30)
}

// velocity 最近 window 个观测的相邻差分均值，钳制到 [-10, 10]。
// 少于 2 个观测返回 0。
func velocity(scores []float64, window int) float64 {
	if len(scores) < 2 {
		return 0
	}

	recent := tail(scores, window)
	if len(recent) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(recent); i++ {
		total += recent[i] - recent[i-1]
	}
	v := total / float64(len(recent)-1)

	return clamp(v, -10, 10)
}

// stability 最近 window 个观测的平均绝对波动换算的稳定度，
// 1 - avgFluctuation/20，下限 0。少于 3 个观测返回中性值 0.5。
func stability(scores []float64, window int) float64 {
	if len(scores) < 3 {
		return 0.5
	}

	recent := tail(scores, window)

	var total float64
	for i := 1; i < len(recent); i++ {
		total += math.Abs(recent[i] - recent[i-1])
	}
	avgFluctuation := total / float64(len(recent)-1)

	return math.Max(0, 1-avgFluctuation/20)
}

// tail 取切片末尾至多 n 个元素
func tail(scores []float64, n int) []float64 {
	if n <= 0 || len(scores) <= n {
		return scores
	}
	return scores[len(scores)-n:]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
