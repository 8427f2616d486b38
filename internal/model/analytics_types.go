package model

// AnalysisResult 一次分析调用返回给客户端的完整结果
type AnalysisResult struct {
	Patterns        []Pattern        `json:"patterns"`
	Recommendations []Recommendation `json:"recommendations"`
	GeneratedAt     string           `json:"generatedAt"`
}

// CategoryTrendPoint 单个维度的历史曲线单项数据
type CategoryTrendPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// CategoryTrendResponse 维度历史曲线响应
type CategoryTrendResponse struct {
	Category string               `json:"category"`
	Trend    Trend                `json:"trend"`
	Points   []CategoryTrendPoint `json:"points"`
}

// WellnessOverview 用户维度概览
type WellnessOverview struct {
	TotalSessions int                `json:"totalSessions"`
	TotalCheckins int                `json:"totalCheckins"`
	CurrentStreak int                `json:"currentStreak"`
	AverageScore  float64            `json:"averageScore"`
	LatestScores  map[string]float64 `json:"latestScores"`
}
