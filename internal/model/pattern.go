package model

import "time"

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// Pattern 单个维度的行为模式快照，每次分析调用重新计算，不落库
type Pattern struct {
	Category    string    `json:"category"`
	Score       float64   `json:"score"`       // 0-100
	Trend       Trend     `json:"trend"`       // improving / stable / declining
	Consistency float64   `json:"consistency"` // 0-1
	Velocity    float64   `json:"velocity"`    // -10 ~ 10
	Stability   float64   `json:"stability"`   // 0-1
	LastUpdated time.Time `json:"lastUpdated"`
}
