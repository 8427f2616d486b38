package model

// Category 生活维度分类（如身体、心智、情绪等），开放可扩展
type Category struct {
	BaseModel
	Code        string `gorm:"size:100;uniqueIndex" json:"code"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"default:0" json:"order"`
	Enabled     bool   `gorm:"default:true" json:"enabled"`
}

func (Category) TableName() string {
	return "categories"
}
