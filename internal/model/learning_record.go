package model

import "time"

// LearningRecord 单次分析调用的完整留痕，由引擎的历史缓冲区持有
type LearningRecord struct {
	Timestamp       time.Time        `json:"timestamp"`
	Patterns        []Pattern        `json:"patterns"`
	Recommendations []Recommendation `json:"recommendations"`
	UserContext     UserContext      `json:"userContext"`
}

// HistoryStats 历史缓冲区的描述性统计，仅用于洞察文案展示
type HistoryStats struct {
	Count    int    `json:"count"`
	Maturity string `json:"maturity"` // warming_up / calibrating / established
}
