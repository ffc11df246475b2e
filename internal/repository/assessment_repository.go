package repository

import (
	"errors"

	"gorm.io/gorm"

	"mindwell-backend/internal/db"
	"mindwell-backend/internal/model"
)

// OptionCount pairs an option id with the number of responses that chose it.
type OptionCount struct {
	OptionID uint
	Count    int64
}

type AssessmentRepository interface {
	// CreateWithResponses persists the assessment row and all of its response
	// rows in one transaction; either everything commits or nothing does.
	CreateWithResponses(assessment *model.Assessment, responses []model.AssessmentResponse) error
	ListByUser(userID uint) ([]model.Assessment, error)
	GetByIDForUser(id, userID uint) (*model.Assessment, error)
	// Response analytics for one question, read by the analytics cache.
	CountResponsesByOption(questionID uint) ([]OptionCount, error)
	ResponseStats(questionID uint) (total int64, avgScore float64, err error)
}

type assessmentRepository struct{}

func NewAssessmentRepository() AssessmentRepository {
	return &assessmentRepository{}
}

func (r *assessmentRepository) CreateWithResponses(assessment *model.Assessment, responses []model.AssessmentResponse) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AssessmentType", "Responses").Create(assessment).Error; err != nil {
			return err
		}
		for i := range responses {
			responses[i].AssessmentID = assessment.ID
			if err := tx.Create(&responses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *assessmentRepository) ListByUser(userID uint) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := db.GetDB().
		Preload("AssessmentType").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) GetByIDForUser(id, userID uint) (*model.Assessment, error) {
	var assessment model.Assessment
	err := db.GetDB().
		Preload("AssessmentType").
		Preload("Responses").
		Where("id = ? AND user_id = ?", id, userID).
		First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) CountResponsesByOption(questionID uint) ([]OptionCount, error) {
	var counts []OptionCount
	err := db.GetDB().Model(&model.AssessmentResponse{}).
		Select("selected_option_id AS option_id, COUNT(*) AS count").
		Where("question_id = ? AND selected_option_id IS NOT NULL", questionID).
		Group("selected_option_id").
		Scan(&counts).Error
	return counts, err
}

func (r *assessmentRepository) ResponseStats(questionID uint) (int64, float64, error) {
	var stats struct {
		Total int64
		Avg   *float64
	}
	err := db.GetDB().Model(&model.AssessmentResponse{}).
		Select("COUNT(*) AS total, AVG(response_value) AS avg").
		Where("question_id = ?", questionID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	avg := 0.0
	if stats.Avg != nil {
		avg = *stats.Avg
	}
	return stats.Total, avg, nil
}
