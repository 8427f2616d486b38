package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Coach  UserRole = "coach"
	Admin  UserRole = "admin"
)

type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
)

type MotivationType string

const (
	MotivationAchievement MotivationType = "achievement"
	MotivationGrowth      MotivationType = "growth"
	MotivationSocial      MotivationType = "social"
	MotivationBalance     MotivationType = "balance"
)

// swagger:model User
type User struct {
	BaseModel
	Name                string         `gorm:"size:100;not null" json:"name"`
	Email               string         `gorm:"size:100;unique;not null" json:"email"`
	Password            string         `gorm:"size:100;not null" json:"-"`
	Role                UserRole       `gorm:"type:enum('member','coach','admin');default:'member'" json:"role"`
	PreferredTime       string         `gorm:"size:20;default:'morning'" json:"preferredTime"` // morning / afternoon / evening
	LearningStyle       LearningStyle  `gorm:"type:varchar(20);default:'visual'" json:"learningStyle"`
	MotivationType      MotivationType `gorm:"type:varchar(20);default:'growth'" json:"motivationType"`
	CategoryPreferences []string       `gorm:"serializer:json;type:json" json:"categoryPreferences"` // 偏好维度 code 列表
	Language            string         `gorm:"size:10;default:'en'" json:"language"`
	Avatar              string         `gorm:"size:255" json:"avatar"`
	Disabled            bool           `gorm:"default:false" json:"disabled"`
	LastLogin           time.Time      `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen            time.Time      `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
