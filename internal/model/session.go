package model

import (
	"time"
)

// WellnessSession 记录用户一次自评会话，每个维度一个 0-100 分值。
// 会话历史是引擎的"opaque session log"，引擎本身不负责存储。
// swagger:model WellnessSession
type WellnessSession struct {
	BaseModel
	UserID     uint               `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	RecordedAt time.Time          `gorm:"not null;index" json:"recordedAt"`
	Scores     map[string]float64 `gorm:"serializer:json;type:json" json:"scores"` // 维度 code -> 分数
	Note       string             `gorm:"type:text" json:"note"`
	Completed  bool               `gorm:"default:true" json:"completed"`
	Duration   int                `gorm:"default:0" json:"duration"` // 分钟
}

func (WellnessSession) TableName() string {
	return "wellness_sessions"
}

// SessionScores 引擎侧的会话快照，按时间升序提供给 Analyze
type SessionScores struct {
	RecordedAt time.Time          `json:"recordedAt"`
	Scores     map[string]float64 `json:"scores"`
}

// Snapshot 转为引擎输入格式
func (s *WellnessSession) Snapshot() SessionScores {
	return SessionScores{RecordedAt: s.RecordedAt, Scores: s.Scores}
}
