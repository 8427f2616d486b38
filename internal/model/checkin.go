package model

import (
	"time"

	"gorm.io/gorm"
)

// Checkin 记录用户的每日打卡信息，连续天数用于引擎的用户上下文
// swagger:model Checkin
type Checkin struct {
	gorm.Model
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;type:bigint unsigned;not null"`
	CheckinAt  time.Time `gorm:"not null;index:idx_user_checkin_date,unique"`
	StreakDays int       `gorm:"default:1"` // 连续打卡天数
}

func (Checkin) TableName() string {
	return "checkins"
}
