package model

// UserContext 一次分析调用的用户行为上下文，由服务层组装，调用内不可变。
// 缺失字段按零值参与概率估算。
type UserContext struct {
	TotalSessions       int                `json:"totalSessions"`
	CurrentStreak       int                `json:"currentStreak"`
	PreferredTime       string             `json:"preferredTime"`
	CompletionRate      float64            `json:"completionRate"` // 0-1
	CategoryPreferences []string           `json:"categoryPreferences"`
	PreviousSuccess     map[string]float64 `json:"previousSuccess"` // 维度 code -> 历史完成率
	LearningStyle       LearningStyle      `json:"learningStyle"`
	MotivationType      MotivationType     `json:"motivationType"`
}

// PrefersCategory 判断某维度是否在用户偏好列表中
func (c UserContext) PrefersCategory(category string) bool {
	for _, p := range c.CategoryPreferences {
		if p == category {
			return true
		}
	}
	return false
}
