package repository

import (
	"lifeos_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepository struct {
	DB *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{DB: db}
}

// ReplaceForUser 以最新一次分析结果覆盖用户的待处理建议。
// 已有结果（completed/dismissed）保留，作为 previousSuccess 的数据来源；
// 建议 ID 对同一用户是稳定的，与已反馈的旧建议冲突时跳过插入，
// 不会把已完成的建议重新置为待处理。
func (r *RecommendationRepository) ReplaceForUser(userID uint, recs []model.StoredRecommendation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ? AND outcome = ?", userID, model.OutcomePending).
			Delete(&model.StoredRecommendation{}).Error; err != nil {
			return err
		}
		for i := range recs {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&recs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RecommendationRepository) ListPendingByUser(userID uint) ([]model.StoredRecommendation, error) {
	var recs []model.StoredRecommendation
	err := r.DB.Where("user_id = ? AND outcome = ?", userID, model.OutcomePending).
		Order("confidence * success_probability DESC").
		Find(&recs).Error
	return recs, err
}

func (r *RecommendationRepository) FindByIDAndUser(id string, userID uint) (*model.StoredRecommendation, error) {
	var rec model.StoredRecommendation
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecommendationRepository) UpdateOutcome(id string, userID uint, outcome model.OutcomeStatus) error {
	return r.DB.Model(&model.StoredRecommendation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("outcome", outcome).Error
}

// SuccessRateByCategory 每个维度的历史完成率（completed / 已有结果的建议数），
// 组装 UserContext.previousSuccess 时使用
func (r *RecommendationRepository) SuccessRateByCategory(userID uint) (map[string]float64, error) {
	var rows []struct {
		Category string  `gorm:"column:category"`
		Rate     float64 `gorm:"column:rate"`
		Resolved int64   `gorm:"column:resolved"`
	}

	err := r.DB.Model(&model.StoredRecommendation{}).
		Select("category, AVG(CASE WHEN outcome = 'completed' THEN 1.0 ELSE 0.0 END) as rate, COUNT(*) as resolved").
		Where("user_id = ? AND outcome <> ?", userID, model.OutcomePending).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rates := make(map[string]float64, len(rows))
	for _, row := range rows {
		rates[row.Category] = row.Rate
	}
	return rates, nil
}
