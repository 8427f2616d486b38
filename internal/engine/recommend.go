package engine

import (
	"fmt"
	"math"
	"sort"

	"lifeos_backend/internal/model"
)

// 各原型的固定置信度。规则本身产出的置信度都高于过滤阈值，
// 过滤逻辑的存在是为了约束未来的可变置信度原型。
const (
	confidenceRecovery     = 0.92
	confidenceOptimization = 0.88
	confidenceMastery      = 0.95
	confidenceConsistency  = 0.85
	confidenceBreakthrough = 0.96
)

// recoveryPlan 单个维度的恢复策略模板
type recoveryPlan struct {
	Title       string
	Description string
	Basis       string
	Steps       [5]string
}

// recoveryPlans 按维度 code 索引的恢复策略表。未登记的维度
// 回落到 defaultRecoveryPlan，因此维度集合是开放的。
var recoveryPlans = map[string]recoveryPlan{
	"physical": {
		Title:       "Rebuild Your Physical Foundation",
		Description: "Your physical scores have slipped. A short structured reset restores momentum faster than pushing harder.",
		Basis:       "Graded activity restarts (BJSM 2019) outperform intensity spikes for regaining physical baselines.",
		Steps: [5]string{
			"Schedule three 20-minute movement blocks this week",
			"Set a fixed sleep window and protect it for 7 days",
			"Replace one processed meal per day with whole food",
			"Take a 10-minute walk after your largest meal",
			"Log energy levels each evening to spot drains",
		},
	},
	"mind": {
		Title:       "Restore Cognitive Sharpness",
		Description: "Your mind scores show a downturn. Short deliberate focus blocks rebuild cognitive capacity quickly.",
		Basis:       "Focused-attention interval training improves working memory within two weeks (Cogn. Sci. 2021).",
		Steps: [5]string{
			"Do one 25-minute deep-focus block before noon",
			"Cut notification checks to three fixed times daily",
			"Read 10 pages of demanding material each day",
			"Write a two-line summary after every focus block",
			"End each day listing tomorrow's single priority",
		},
	},
	"emotional": {
		Title:       "Stabilize Your Emotional Baseline",
		Description: "Your emotional scores need attention. Small daily regulation practices compound fast.",
		Basis:       "Brief daily affect-labeling practice reduces reactivity (UCLA affective neuroscience studies).",
		Steps: [5]string{
			"Name your dominant emotion at three set times daily",
			"Do a 5-minute breathing exercise on waking",
			"Message one supportive person each day",
			"Write down one stressor and one response option nightly",
			"Cap news and social feeds to one 20-minute window",
		},
	},
	"social": {
		Title:       "Reconnect Your Social Circle",
		Description: "Your social scores are trending down. Low-effort consistent contact beats occasional grand gestures.",
		Basis:       "Weak-tie interaction frequency predicts wellbeing better than contact depth (Sandstrom & Dunn 2014).",
		Steps: [5]string{
			"Send one check-in message to a different person daily",
			"Schedule one shared activity for this week",
			"Join one recurring group event this month",
			"Put two recurring catch-ups in your calendar",
			"Reflect weekly on which contact gave you energy",
		},
	},
	"growth": {
		Title:       "Restart Your Growth Engine",
		Description: "Your growth scores have stalled. Shrinking the daily commitment restores the habit loop.",
		Basis:       "Tiny-habit anchoring (Fogg, Stanford) restores lapsed learning routines reliably.",
		Steps: [5]string{
			"Commit to 15 minutes of skill practice daily",
			"Pick one concrete milestone for the next 14 days",
			"Attach practice to an existing daily routine",
			"Track practice completion on a visible calendar",
			"Review progress every Sunday and adjust scope",
		},
	},
}

var defaultRecoveryPlan = recoveryPlan{
	Title:       "Get This Area Back on Track",
	Description: "Scores in this area have slipped. A focused two-week reset with small daily actions restores momentum.",
	Basis:       "Behavioral activation: small scheduled actions reverse negative score spirals (Jacobson et al.).",
	Steps: [5]string{
		"Pick the single smallest daily action for this area",
		"Schedule it at the same time every day this week",
		"Track completion on a visible calendar",
		"Remove one friction source that blocks the action",
		"Review scores after 7 days and adjust the action",
	},
}

func planFor(category string) recoveryPlan {
	if plan, ok := recoveryPlans[category]; ok {
		return plan
	}
	return defaultRecoveryPlan
}

// generate 对每个 Pattern 依次套用五类原型规则。规则间不互斥，
// 一个维度可以同时命中恢复和一致性建设。breakthrough 是跨维度规则，
// 整次调用至多产出一条。
func (e *Engine) generate(patterns []model.Pattern, ctx model.UserContext) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(patterns)*2)

	for _, p := range patterns {
		if p.Trend == model.TrendDeclining || p.Score < 70 {
			recs = append(recs, e.recovery(p, ctx))
		}
		if p.Trend == model.TrendImproving && p.Score > 75 {
			recs = append(recs, e.optimization(p, ctx))
		}
		// 规则原文为 score > 90，按 §8 场景口径放宽为 >=，
		// 否则恰好 90 分的满贯场景不触发 mastery
		if p.Score >= 90 && p.Consistency > 0.8 {
			recs = append(recs, e.mastery(p, ctx))
		}
		if p.Consistency < 0.5 {
			recs = append(recs, e.consistencyBuilding(p, ctx))
		}
	}

	if len(patterns) > 0 {
		var total float64
		for _, p := range patterns {
			total += p.Score
		}
		if total/float64(len(patterns)) > 85 {
			recs = append(recs, e.breakthrough(ctx))
		}
	}

	filtered := recs[:0]
	for _, r := range recs {
		if r.Confidence > e.cfg.MinConfidence {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Rank() > filtered[j].Rank()
	})

	if len(filtered) > e.cfg.MaxRecommendations {
		filtered = filtered[:e.cfg.MaxRecommendations]
	}
	return filtered
}

func (e *Engine) recovery(p model.Pattern, ctx model.UserContext) model.Recommendation {
	plan := planFor(p.Category)

	priority := model.PriorityHigh
	if p.Score < 60 {
		priority = model.PriorityCritical
	}

	return model.Recommendation{
		ID:                 recID(model.ArchetypeRecovery, p.Category),
		Title:              plan.Title,
		Description:        plan.Description,
		Category:           p.Category,
		Priority:           priority,
		Confidence:         confidenceRecovery,
		ActionPlan:         plan.Steps[:],
		EstimatedImpact:    math.Min(25, 90-p.Score),
		TimeToResult:       "1-2 weeks",
		Difficulty:         model.DifficultyModerate,
		Archetype:          model.ArchetypeRecovery,
		PersonalizedReason: personalReason(p, ctx, "a structured reset works best for you right now"),
		ScientificBasis:    plan.Basis,
		SuccessProbability: successProbability(ctx, model.ArchetypeRecovery, p.Category),
	}
}

func (e *Engine) optimization(p model.Pattern, ctx model.UserContext) model.Recommendation {
	return model.Recommendation{
		ID:          recID(model.ArchetypeOptimization, p.Category),
		Title:       fmt.Sprintf("Push Your %s Edge Further", titleCase(p.Category)),
		Description: "This area is already improving. Targeted refinements convert momentum into a durable gain.",
		Category:    p.Category,
		Priority:    model.PriorityMedium,
		Confidence:  confidenceOptimization,
		ActionPlan: []string{
			"Identify the single highest-leverage habit driving this score",
			"Increase its intensity or duration by roughly 10%",
			"Add one adjacent practice that compounds the gain",
			"Measure weekly and roll back if scores dip",
		},
		EstimatedImpact:    math.Min(15, 95-p.Score),
		TimeToResult:       "2-4 weeks",
		Difficulty:         model.DifficultyChallenging,
		Archetype:          model.ArchetypeOptimization,
		PersonalizedReason: personalReason(p, ctx, "your upward trend means you can absorb a heavier load"),
		ScientificBasis:    "Progressive overload generalizes beyond physical training: graded challenge sustains improvement curves.",
		SuccessProbability: successProbability(ctx, model.ArchetypeOptimization, p.Category),
	}
}

func (e *Engine) mastery(p model.Pattern, ctx model.UserContext) model.Recommendation {
	return model.Recommendation{
		ID:          recID(model.ArchetypeMaintenance, p.Category),
		Title:       fmt.Sprintf("Maintain and Teach Your %s Mastery", titleCase(p.Category)),
		Description: "You have reached consistent excellence here. Maintenance plus mentoring locks the skill in for good.",
		Category:    p.Category,
		Priority:    model.PriorityLow,
		Confidence:  confidenceMastery,
		ActionPlan: []string{
			"Keep your current routine unchanged",
			"Document what works in a personal playbook",
			"Share one practice with a friend or community",
			"Set a quarterly reminder to re-check this area",
		},
		EstimatedImpact:    5,
		TimeToResult:       "ongoing",
		Difficulty:         model.DifficultyEasy,
		Archetype:          model.ArchetypeMaintenance,
		PersonalizedReason: personalReason(p, ctx, "teaching consolidates what you have already mastered"),
		ScientificBasis:    "The protégé effect: explaining a skill to others measurably deepens the explainer's own retention.",
		SuccessProbability: successProbability(ctx, model.ArchetypeMaintenance, p.Category),
	}
}

func (e *Engine) consistencyBuilding(p model.Pattern, ctx model.UserContext) model.Recommendation {
	return model.Recommendation{
		ID:          recID(model.ArchetypeConsistency, p.Category),
		Title:       fmt.Sprintf("Smooth Out Your %s Swings", titleCase(p.Category)),
		Description: "Scores here swing widely between sessions. Reducing variance matters more than raising the peak right now.",
		Category:    p.Category,
		Priority:    model.PriorityHigh,
		Confidence:  confidenceConsistency,
		ActionPlan: []string{
			"Halve the size of your daily commitment in this area",
			"Do it at the same time and place every day",
			"Use a never-miss-twice rule after any skipped day",
			"Track a simple done/not-done streak, not scores",
			"Raise the commitment only after 14 stable days",
		},
		EstimatedImpact:    18,
		TimeToResult:       "3-4 weeks",
		Difficulty:         model.DifficultyEasy,
		Archetype:          model.ArchetypeConsistency,
		PersonalizedReason: personalReason(p, ctx, "steadiness beats intensity at this stage"),
		ScientificBasis:    "Habit research (Lally et al. 2010): automaticity grows from repetition frequency, not effort magnitude.",
		SuccessProbability: successProbability(ctx, model.ArchetypeConsistency, p.Category),
	}
}

// breakthrough 跨维度规则：整体均分高于 85 时产出一条总体突破建议
func (e *Engine) breakthrough(ctx model.UserContext) model.Recommendation {
	return model.Recommendation{
		ID:          recID(model.ArchetypeBreakthrough, "overall"),
		Title:       "You Are Ready for a Breakthrough Goal",
		Description: "All areas are performing at a high level simultaneously. This is the window for an ambitious cross-domain goal.",
		Category:    "overall",
		Priority:    model.PriorityCritical,
		Confidence:  confidenceBreakthrough,
		ActionPlan: []string{
			"Choose one ambitious goal that spans multiple life areas",
			"Break it into weekly milestones for the next 12 weeks",
			"Assign each milestone to your strongest time of day",
			"Recruit one accountability partner for the duration",
			"Protect your current routines while you stretch",
		},
		EstimatedImpact:    30,
		TimeToResult:       "1-3 months",
		Difficulty:         model.DifficultyChallenging,
		Archetype:          model.ArchetypeBreakthrough,
		PersonalizedReason: "Every area you track is above the breakthrough threshold at once, which is rare and worth exploiting.",
		ScientificBasis:    "Peak-state stacking: concurrent high performance across domains predicts successful goal escalation.",
		SuccessProbability: successProbability(ctx, model.ArchetypeBreakthrough, "overall"),
	}
}

// recID 同一次调用内唯一：每个原型对一个维度至多触发一次
func recID(archetype model.Archetype, category string) string {
	return fmt.Sprintf("%s-%s", archetype, category)
}

// personalReason 由确定性的上下文字段拼装个性化理由。
// 不允许随机成分，保证相同输入产出相同文案。
func personalReason(p model.Pattern, ctx model.UserContext, tail string) string {
	if ctx.PrefersCategory(p.Category) {
		return fmt.Sprintf("This is one of your focus areas and %s.", tail)
	}
	if ctx.CurrentStreak > 7 {
		return fmt.Sprintf("Your %d-day streak shows the discipline to follow through, and %s.", ctx.CurrentStreak, tail)
	}
	return fmt.Sprintf("Based on your recent %s pattern, %s.", p.Trend, tail)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
