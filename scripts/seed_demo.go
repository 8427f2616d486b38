// 演示数据灌入脚本
//
// 为本地联调创建一个演示账号，并生成最近四周的自评会话数据，
// 覆盖下滑、上升和平稳三种曲线，便于前端直接看到完整的分析结果。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"log"
	"os"
	"time"

	"lifeos_backend/internal/config"
	"lifeos_backend/internal/model"
	"lifeos_backend/pkg/database"
	"lifeos_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	user := model.User{
		Name:                "Demo",
		Email:               "demo@lifeos.local",
		Password:            string(hashed),
		Role:                model.Member,
		PreferredTime:       "morning",
		CategoryPreferences: []string{"physical", "mind"},
	}

	var existing model.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		log.Println("演示账号已存在，跳过创建")
		user = existing
	} else {
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("创建演示账号失败: %v", err)
		}
		log.Printf("已创建演示账号 %s (密码 demo12345)", user.Email)
	}

	// 四周会话：mind 下滑触发恢复，growth 上升触发优化，
	// physical 高位平稳触发精通
	base := time.Now().AddDate(0, 0, -28)
	for i := 0; i < 28; i++ {
		day := base.AddDate(0, 0, i)
		session := model.WellnessSession{
			UserID:     user.ID,
			RecordedAt: day,
			Scores: map[string]float64{
				"physical":  90 + float64(i%3),
				"mind":      80 - float64(i),
				"emotional": 72,
				"social":    68 + float64(i%5),
				"growth":    55 + float64(i),
			},
			Completed: true,
			Duration:  5 + i%4,
		}
		if err := db.Create(&session).Error; err != nil {
			log.Fatalf("写入会话数据失败: %v", err)
		}
	}

	// 连续打卡记录
	for i := 8; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i).Truncate(24 * time.Hour)
		checkin := model.Checkin{
			UserID:     user.ID,
			CheckinAt:  day,
			StreakDays: 9 - i,
		}
		db.Create(&checkin)
	}

	log.Println("演示数据灌入完成")
}
