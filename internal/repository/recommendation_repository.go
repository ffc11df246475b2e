package repository

import (
	"errors"

	"gorm.io/gorm"

	"mindwell-backend/internal/db"
	"mindwell-backend/internal/model"
)

type RecommendationRepository interface {
	GetByTypeAndRisk(typeID uint, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error)
	List(typeName string, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error)
	GetByID(id uint) (*model.AssessmentRecommendation, error)
	Create(rec *model.AssessmentRecommendation) error
	Update(rec *model.AssessmentRecommendation) error
	Delete(id uint) error
}

type recommendationRepository struct{}

func NewRecommendationRepository() RecommendationRepository {
	return &recommendationRepository{}
}

func (r *recommendationRepository) GetByTypeAndRisk(typeID uint, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error) {
	var recs []model.AssessmentRecommendation
	err := db.GetDB().
		Where("assessment_type_id = ? AND risk_level = ?", typeID, riskLevel).
		Order("priority ASC").
		Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) List(typeName string, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error) {
	q := db.GetDB().Model(&model.AssessmentRecommendation{})
	if typeName != "" {
		q = q.Joins("JOIN assessment_types ON assessment_types.id = assessment_recommendations.assessment_type_id").
			Where("assessment_types.name = ?", typeName)
	}
	if riskLevel != "" {
		q = q.Where("assessment_recommendations.risk_level = ?", riskLevel)
	}
	var recs []model.AssessmentRecommendation
	err := q.Order("assessment_recommendations.priority ASC").Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) GetByID(id uint) (*model.AssessmentRecommendation, error) {
	var rec model.AssessmentRecommendation
	err := db.GetDB().First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) Create(rec *model.AssessmentRecommendation) error {
	return db.GetDB().Create(rec).Error
}

func (r *recommendationRepository) Update(rec *model.AssessmentRecommendation) error {
	return db.GetDB().Save(rec).Error
}

func (r *recommendationRepository) Delete(id uint) error {
	return db.GetDB().Delete(&model.AssessmentRecommendation{}, id).Error
}
