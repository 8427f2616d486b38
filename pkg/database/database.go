package database

import (
	"fmt"
	"log"

	"lifeos_backend/internal/config"
	"lifeos_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Checkin{},
		&model.Category{},
		&model.WellnessSession{},
		&model.StoredRecommendation{},
		&model.Motivation{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认的生活维度（为空时写入内置五维）
	var catCount int64
	db.Model(&model.Category{}).Count(&catCount)
	if catCount == 0 {
		defaultCategories := []model.Category{
			{Code: "physical", Name: "身体", Description: "运动、睡眠与身体能量", Order: 1, Enabled: true},
			{Code: "mind", Name: "心智", Description: "专注力与认知表现", Order: 2, Enabled: true},
			{Code: "emotional", Name: "情绪", Description: "情绪稳定与压力调节", Order: 3, Enabled: true},
			{Code: "social", Name: "社交", Description: "人际连接与支持网络", Order: 4, Enabled: true},
			{Code: "growth", Name: "成长", Description: "学习与个人发展", Order: 5, Enabled: true},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	// 默认的激励短句
	var count int64
	db.Model(&model.Motivation{}).Count(&count)
	if count == 0 {
		defaultMotivations := []string{
			"你记录的每一次自评都是对自己的一次诚实。继续！",
			"小而稳定的进步胜过偶尔的爆发。",
			"Consistency beats intensity.",
			"今天的低分只是数据，不是评判。",
		}
		for i, content := range defaultMotivations {
			motivation := &model.Motivation{
				Content:         content,
				IsEnabled:       true,
				IsCurrentlyUsed: i == 0,
			}
			db.Create(motivation)
		}
	}

	return db, nil
}
