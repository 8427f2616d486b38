package model

type RecommendationPriority string

const (
	PriorityLow      RecommendationPriority = "low"
	PriorityMedium   RecommendationPriority = "medium"
	PriorityHigh     RecommendationPriority = "high"
	PriorityCritical RecommendationPriority = "critical"
)

type Archetype string

const (
	ArchetypeRecovery     Archetype = "recovery"
	ArchetypeOptimization Archetype = "optimization"
	ArchetypeMaintenance  Archetype = "maintenance"
	ArchetypeConsistency  Archetype = "consistency"
	ArchetypeBreakthrough Archetype = "breakthrough"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

// Recommendation 引擎输出的单条可执行建议
type Recommendation struct {
	ID                 string                 `json:"id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Category           string                 `json:"category"`
	Priority           RecommendationPriority `json:"priority"`
	Confidence         float64                `json:"confidence"` // 0-1，低于 0.6 不会出现在结果中
	ActionPlan         []string               `json:"actionPlan"`
	EstimatedImpact    float64                `json:"estimatedImpact"`
	TimeToResult       string                 `json:"timeToResult"`
	Difficulty         Difficulty             `json:"difficulty"`
	Archetype          Archetype              `json:"archetype"`
	PersonalizedReason string                 `json:"personalizedReason"`
	ScientificBasis    string                 `json:"scientificBasis"`
	SuccessProbability float64                `json:"successProbability"` // 0.40-0.98
}

// Rank 排序权重：confidence × successProbability
func (r Recommendation) Rank() float64 {
	return r.Confidence * r.SuccessProbability
}

type OutcomeStatus string

const (
	OutcomePending   OutcomeStatus = "pending"
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeDismissed OutcomeStatus = "dismissed"
)

// StoredRecommendation 持久化的建议记录，用户反馈的完成情况
// 会回流到后续分析调用的 previousSuccess 上下文中
// swagger:model StoredRecommendation
type StoredRecommendation struct {
	UUIDBase
	UserID             uint                   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title              string                 `gorm:"size:255;not null" json:"title"`
	Description        string                 `gorm:"type:text" json:"description"`
	Category           string                 `gorm:"size:100;index" json:"category"`
	Priority           RecommendationPriority `gorm:"type:varchar(20)" json:"priority"`
	Confidence         float64                `gorm:"default:0" json:"confidence"`
	ActionPlan         []string               `gorm:"serializer:json;type:json" json:"actionPlan"`
	EstimatedImpact    float64                `gorm:"default:0" json:"estimatedImpact"`
	TimeToResult       string                 `gorm:"size:50" json:"timeToResult"`
	Difficulty         Difficulty             `gorm:"type:varchar(20)" json:"difficulty"`
	Archetype          Archetype              `gorm:"type:varchar(20);index" json:"archetype"`
	PersonalizedReason string                 `gorm:"type:text" json:"personalizedReason"`
	ScientificBasis    string                 `gorm:"type:text" json:"scientificBasis"`
	SuccessProbability float64                `gorm:"default:0" json:"successProbability"`
	Outcome            OutcomeStatus          `gorm:"type:varchar(20);default:'pending'" json:"outcome"`
}

func (StoredRecommendation) TableName() string {
	return "recommendations"
}
