package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"mindwell-backend/internal/db"
	"mindwell-backend/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type AssessmentTypeRepository interface {
	Create(t *model.AssessmentType) error
	GetByID(id uint) (*model.AssessmentType, error)
	GetByName(name string) (*model.AssessmentType, error)
	ListActive() ([]model.AssessmentType, error)
	ListAll() ([]model.AssessmentType, error)
	Update(t *model.AssessmentType) error
	Delete(t *model.AssessmentType) error
	CountAssessments(typeID uint) (int64, error)
	ExistsByName(name string) (bool, error)
}

type assessmentTypeRepository struct{}

func NewAssessmentTypeRepository() AssessmentTypeRepository {
	return &assessmentTypeRepository{}
}

func (r *assessmentTypeRepository) Create(t *model.AssessmentType) error {
	return db.GetDB().Create(t).Error
}

func preloadTypeAssociations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Questions", func(q *gorm.DB) *gorm.DB {
			return q.Order("question_number ASC")
		}).
		Preload("Questions.Options", func(q *gorm.DB) *gorm.DB {
			return q.Order("order_index ASC")
		})
}

func (r *assessmentTypeRepository) GetByID(id uint) (*model.AssessmentType, error) {
	var t model.AssessmentType
	err := preloadTypeAssociations(db.GetDB()).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *assessmentTypeRepository) GetByName(name string) (*model.AssessmentType, error) {
	var t model.AssessmentType
	err := preloadTypeAssociations(db.GetDB()).
		Where("name = ?", strings.ToUpper(name)).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *assessmentTypeRepository) ListActive() ([]model.AssessmentType, error) {
	var types []model.AssessmentType
	err := preloadTypeAssociations(db.GetDB()).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *assessmentTypeRepository) ListAll() ([]model.AssessmentType, error) {
	var types []model.AssessmentType
	err := preloadTypeAssociations(db.GetDB()).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *assessmentTypeRepository) Update(t *model.AssessmentType) error {
	return db.GetDB().Save(t).Error
}

func (r *assessmentTypeRepository) Delete(t *model.AssessmentType) error {
	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id IN (?)",
			tx.Model(&model.AssessmentQuestion{}).Select("id").Where("assessment_type_id = ?", t.ID),
		).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_type_id = ?", t.ID).Delete(&model.AssessmentQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assessment_type_id = ?", t.ID).Delete(&model.AssessmentRecommendation{}).Error; err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}

func (r *assessmentTypeRepository) CountAssessments(typeID uint) (int64, error) {
	var count int64
	err := db.GetDB().Model(&model.Assessment{}).
		Where("assessment_type_id = ?", typeID).
		Count(&count).Error
	return count, err
}

func (r *assessmentTypeRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := db.GetDB().Model(&model.AssessmentType{}).
		Where("UPPER(name) = ?", strings.ToUpper(name)).
		Count(&count).Error
	return count > 0, err
}
