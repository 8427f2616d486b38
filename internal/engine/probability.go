package engine

import "lifeos_backend/internal/model"

// 概率边界：启发式估计永远落在 [0.40, 0.98]
const (
	probabilityBaseline = 0.70
	probabilityFloor    = 0.40
	probabilityCeiling  = 0.98
)

// successProbability 把用户上下文和建议原型混合成一个有界概率。
// 各项调整相互独立、先累加再钳制。这不是统计校准的概率，
// 只是一个可解释的启发式排序信号。
func successProbability(ctx model.UserContext, archetype model.Archetype, category string) float64 {
	p := probabilityBaseline

	if ctx.CompletionRate > 0.8 {
		p += 0.15
	}
	if ctx.CurrentStreak > 7 {
		p += 0.10
	}
	if ctx.TotalSessions > 50 {
		p += 0.05
	}

	switch archetype {
	case model.ArchetypeConsistency:
		p += 0.10
	case model.ArchetypeRecovery:
		p += 0.05
	case model.ArchetypeOptimization:
		p -= 0.05
	case model.ArchetypeBreakthrough:
		p -= 0.15
	}

	if ctx.PrefersCategory(category) {
		p += 0.10
	}

	return clamp(p, probabilityFloor, probabilityCeiling)
}
