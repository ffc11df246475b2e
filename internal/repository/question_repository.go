package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mindwell-backend/internal/db"
	"mindwell-backend/internal/model"
	"mindwell-backend/internal/scoring"
)

type QuestionRepository interface {
	GetByID(id uint) (*model.AssessmentQuestion, error)
	ListByType(typeID uint) ([]model.AssessmentQuestion, error)
	// Create stores the question with the next contiguous question number for
	// its type, assigns option order indexes, and recomputes the type's
	// aggregates, all in one transaction.
	Create(question *model.AssessmentQuestion) error
	// BulkCreate numbers the batch contiguously after the current maximum and
	// commits all questions, their options and the aggregate update atomically.
	BulkCreate(typeID uint, questions []model.AssessmentQuestion) error
	// Update saves changed fields; when replaceOptions is true the full option
	// set is swapped for the given one. Aggregates are recomputed either way.
	Update(question *model.AssessmentQuestion, options []model.QuestionOption, replaceOptions bool) error
	// DeleteAndRenumber removes the question and its options, renumbers the
	// remaining questions of the type into a contiguous 1..N sequence, and
	// recomputes the aggregates. Returns the affected type id.
	DeleteAndRenumber(id uint) (uint, error)
}

type questionRepository struct{}

func NewQuestionRepository() QuestionRepository {
	return &questionRepository{}
}

func (r *questionRepository) GetByID(id uint) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := db.GetDB().
		Preload("Options", func(q *gorm.DB) *gorm.DB { return q.Order("order_index ASC") }).
		First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) ListByType(typeID uint) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	err := db.GetDB().
		Preload("Options", func(q *gorm.DB) *gorm.DB { return q.Order("order_index ASC") }).
		Where("assessment_type_id = ?", typeID).
		Order("question_number ASC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Create(question *model.AssessmentQuestion) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		next, err := nextQuestionNumber(tx, question.AssessmentTypeID)
		if err != nil {
			return err
		}
		question.QuestionNumber = next
		for i := range question.Options {
			question.Options[i].OrderIndex = i
		}
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return recomputeTypeAggregates(tx, question.AssessmentTypeID)
	})
}

func (r *questionRepository) BulkCreate(typeID uint, questions []model.AssessmentQuestion) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		next, err := nextQuestionNumber(tx, typeID)
		if err != nil {
			return err
		}
		for i := range questions {
			questions[i].AssessmentTypeID = typeID
			questions[i].QuestionNumber = next + i
			for j := range questions[i].Options {
				questions[i].Options[j].OrderIndex = j
			}
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return recomputeTypeAggregates(tx, typeID)
	})
}

func (r *questionRepository) Update(question *model.AssessmentQuestion, options []model.QuestionOption, replaceOptions bool) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Options").Save(question).Error; err != nil {
			return err
		}
		if replaceOptions {
			if err := tx.Where("question_id = ?", question.ID).Delete(&model.QuestionOption{}).Error; err != nil {
				return err
			}
			for i := range options {
				options[i].ID = 0
				options[i].QuestionID = question.ID
				options[i].OrderIndex = i
				if err := tx.Create(&options[i]).Error; err != nil {
					return err
				}
			}
			question.Options = options
		}
		return recomputeTypeAggregates(tx, question.AssessmentTypeID)
	})
}

func (r *questionRepository) DeleteAndRenumber(id uint) (uint, error) {
	var typeID uint
	err := db.GetDB().Transaction(func(tx *gorm.DB) error {
		var question model.AssessmentQuestion
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		typeID = question.AssessmentTypeID

		if err := tx.Where("question_id = ?", question.ID).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&question).Error; err != nil {
			return err
		}

		// Lock the surviving question set so concurrent deletions against the
		// same type cannot interleave their renumbering.
		var remaining []model.AssessmentQuestion
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("assessment_type_id = ?", typeID).
			Order("question_number ASC").
			Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].QuestionNumber != i+1 {
				if err := tx.Model(&remaining[i]).Update("question_number", i+1).Error; err != nil {
					return err
				}
			}
		}

		return recomputeTypeAggregates(tx, typeID)
	})
	return typeID, err
}

// nextQuestionNumber locks the type's question rows and returns max+1.
func nextQuestionNumber(tx *gorm.DB, typeID uint) (int, error) {
	var questions []model.AssessmentQuestion
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("assessment_type_id = ?", typeID).
		Order("question_number DESC").
		Limit(1).
		Find(&questions).Error; err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 1, nil
	}
	return questions[0].QuestionNumber + 1, nil
}

// recomputeTypeAggregates re-derives total_questions and max_score from the
// stored question set. Client-supplied aggregates are never trusted.
func recomputeTypeAggregates(tx *gorm.DB, typeID uint) error {
	var questions []model.AssessmentQuestion
	if err := tx.Preload("Options").
		Where("assessment_type_id = ?", typeID).
		Find(&questions).Error; err != nil {
		return err
	}
	return tx.Model(&model.AssessmentType{}).
		Where("id = ?", typeID).
		Updates(map[string]interface{}{
			"total_questions": len(questions),
			"max_score":       scoring.MaxScore(questions),
		}).Error
}
