package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lifeos_backend/internal/model"
)

func TestSuccessProbabilityAdjustments(t *testing.T) {
	neutral := model.UserContext{}

	// 基线 + 原型调整
	assert.InDelta(t, 0.70, successProbability(neutral, "unknown", "mind"), 1e-9)
	assert.InDelta(t, 0.80, successProbability(neutral, model.ArchetypeConsistency, "mind"), 1e-9)
	assert.InDelta(t, 0.75, successProbability(neutral, model.ArchetypeRecovery, "mind"), 1e-9)
	assert.InDelta(t, 0.65, successProbability(neutral, model.ArchetypeOptimization, "mind"), 1e-9)
	assert.InDelta(t, 0.55, successProbability(neutral, model.ArchetypeBreakthrough, "mind"), 1e-9)

	// 上下文加成独立累加
	engaged := model.UserContext{
		TotalSessions:       60,
		CurrentStreak:       10,
		CompletionRate:      0.9,
		CategoryPreferences: []string{"mind"},
	}
	// 0.70 + 0.15 + 0.10 + 0.05 + 0.05 + 0.10 = 1.15 -> 钳制 0.98
	assert.InDelta(t, 0.98, successProbability(engaged, model.ArchetypeRecovery, "mind"), 1e-9)

	// 阈值是严格大于
	edge := model.UserContext{TotalSessions: 50, CurrentStreak: 7, CompletionRate: 0.8}
	assert.InDelta(t, 0.70, successProbability(edge, "unknown", "mind"), 1e-9)
}

func TestSuccessProbabilityBounds(t *testing.T) {
	archetypes := []model.Archetype{
		model.ArchetypeRecovery, model.ArchetypeOptimization, model.ArchetypeMaintenance,
		model.ArchetypeConsistency, model.ArchetypeBreakthrough,
	}
	contexts := []model.UserContext{
		{},
		{TotalSessions: 1000, CurrentStreak: 365, CompletionRate: 1.0, CategoryPreferences: []string{"mind", "physical"}},
		{CompletionRate: 0.81},
		{CurrentStreak: 8},
		{TotalSessions: 51},
		{CategoryPreferences: []string{"physical"}},
	}

	for _, a := range archetypes {
		for _, ctx := range contexts {
			for _, cat := range []string{"mind", "physical", "overall", ""} {
				p := successProbability(ctx, a, cat)
				assert.GreaterOrEqual(t, p, 0.40, "archetype=%s", a)
				assert.LessOrEqual(t, p, 0.98, "archetype=%s", a)
			}
		}
	}
}
