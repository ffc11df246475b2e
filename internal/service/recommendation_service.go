package service

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
)

// RecommendationInput defines or replaces one recommendation row.
type RecommendationInput struct {
	AssessmentTypeID uint            `json:"assessment_type_id" binding:"required"`
	RiskLevel        model.RiskLevel `json:"risk_level" binding:"required"`
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description"`
	ActionItems      []string        `json:"action_items"`
	Resources        []string        `json:"resources"`
	Priority         int             `json:"priority"`
}

type RecommendationService interface {
	List(typeName string, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error)
	Create(role model.Role, input RecommendationInput) (*model.AssessmentRecommendation, error)
	Update(role model.Role, id uint, input RecommendationInput) (*model.AssessmentRecommendation, error)
	Delete(role model.Role, id uint) error
}

type recommendationService struct {
	recoRepo repository.RecommendationRepository
	typeRepo repository.AssessmentTypeRepository
}

func NewRecommendationService(recoRepo repository.RecommendationRepository, typeRepo repository.AssessmentTypeRepository) RecommendationService {
	return &recommendationService{recoRepo: recoRepo, typeRepo: typeRepo}
}

func (s *recommendationService) List(typeName string, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error) {
	return s.recoRepo.List(typeName, riskLevel)
}

func (s *recommendationService) Create(role model.Role, input RecommendationInput) (*model.AssessmentRecommendation, error) {
	if role != model.RoleAdmin {
		return nil, PermissionError("admin access required")
	}
	rec, err := s.buildRecommendation(input)
	if err != nil {
		return nil, err
	}
	if err := s.recoRepo.Create(rec); err != nil {
		return nil, PersistenceError()
	}
	return rec, nil
}

func (s *recommendationService) Update(role model.Role, id uint, input RecommendationInput) (*model.AssessmentRecommendation, error) {
	if role != model.RoleAdmin {
		return nil, PermissionError("admin access required")
	}
	existing, err := s.recoRepo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("recommendation %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.buildRecommendation(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	if err := s.recoRepo.Update(updated); err != nil {
		return nil, PersistenceError()
	}
	return updated, nil
}

func (s *recommendationService) Delete(role model.Role, id uint) error {
	if role != model.RoleAdmin {
		return PermissionError("admin access required")
	}
	if _, err := s.recoRepo.GetByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundError("recommendation %d not found", id)
		}
		return err
	}
	if err := s.recoRepo.Delete(id); err != nil {
		return PersistenceError()
	}
	return nil
}

func (s *recommendationService) buildRecommendation(input RecommendationInput) (*model.AssessmentRecommendation, error) {
	if _, err := s.typeRepo.GetByID(input.AssessmentTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ValidationError("assessment type %d does not exist", input.AssessmentTypeID)
		}
		return nil, err
	}

	actionItems, err := json.Marshal(orEmpty(input.ActionItems))
	if err != nil {
		return nil, ValidationError("invalid action items")
	}
	resources, err := json.Marshal(orEmpty(input.Resources))
	if err != nil {
		return nil, ValidationError("invalid resources")
	}

	priority := input.Priority
	if priority <= 0 {
		priority = 1
	}
	return &model.AssessmentRecommendation{
		AssessmentTypeID: input.AssessmentTypeID,
		RiskLevel:        input.RiskLevel,
		Title:            input.Title,
		Description:      input.Description,
		ActionItems:      datatypes.JSON(actionItems),
		Resources:        datatypes.JSON(resources),
		Priority:         priority,
	}, nil
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
