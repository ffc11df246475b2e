package service

import (
	"errors"
	"regexp"
	"strings"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/internal/scoring"
	"mindwell-backend/utilities"
)

var typeNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// standardTypeNames are the canonical clinical instruments. Types with these
// names are flagged is_standard and have a protected identity.
var standardTypeNames = map[string]bool{
	"PHQ9": true,
	"GAD7": true,
	"PCL5": true,
}

// OptionInput is a client-supplied option definition.
type OptionInput struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score"`
}

// QuestionInput is a client-supplied question definition.
type QuestionInput struct {
	QuestionText    string             `json:"question_text" binding:"required"`
	QuestionType    model.QuestionType `json:"question_type"`
	IsReverseScored bool               `json:"is_reverse_scored"`
	IsRequired      *bool              `json:"is_required"`
	MinValue        *int               `json:"min_value"`
	MaxValue        *int               `json:"max_value"`
	Options         []OptionInput      `json:"options"`
}

// CreateTypeInput defines a new assessment type, optionally with its full
// question set.
type CreateTypeInput struct {
	Name         string          `json:"name" binding:"required"`
	DisplayName  string          `json:"display_name" binding:"required"`
	Description  string          `json:"description"`
	Instructions string          `json:"instructions"`
	IsActive     *bool           `json:"is_active"`
	Questions    []QuestionInput `json:"questions"`
}

// UpdateTypeInput carries a partial update; nil fields are left untouched.
type UpdateTypeInput struct {
	Name         *string `json:"name"`
	DisplayName  *string `json:"display_name"`
	Description  *string `json:"description"`
	Instructions *string `json:"instructions"`
	IsActive     *bool   `json:"is_active"`
}

type SchemaService interface {
	ListActiveTypes() ([]model.AssessmentType, error)
	ListAllTypes(role model.Role) ([]model.AssessmentType, error)
	GetTypeByID(id uint) (*model.AssessmentType, error)
	GetTypeByName(name string) (*model.AssessmentType, error)
	CreateType(role model.Role, creatorID uint, input CreateTypeInput) (*model.AssessmentType, error)
	UpdateType(role model.Role, id uint, input UpdateTypeInput) (*model.AssessmentType, error)
	DeleteType(role model.Role, id uint) error
}

type schemaService struct {
	typeRepo repository.AssessmentTypeRepository
	events   *utilities.EventBus
}

func NewSchemaService(typeRepo repository.AssessmentTypeRepository, events *utilities.EventBus) SchemaService {
	return &schemaService{typeRepo: typeRepo, events: events}
}

func (s *schemaService) ListActiveTypes() ([]model.AssessmentType, error) {
	return s.typeRepo.ListActive()
}

func (s *schemaService) ListAllTypes(role model.Role) ([]model.AssessmentType, error) {
	if role != model.RoleAdmin {
		return nil, PermissionError("admin access required")
	}
	return s.typeRepo.ListAll()
}

func (s *schemaService) GetTypeByID(id uint) (*model.AssessmentType, error) {
	t, err := s.typeRepo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("assessment type %d not found", id)
	}
	return t, err
}

func (s *schemaService) GetTypeByName(name string) (*model.AssessmentType, error) {
	t, err := s.typeRepo.GetByName(name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("assessment type %q not found", strings.ToUpper(name))
	}
	return t, err
}

func (s *schemaService) CreateType(role model.Role, creatorID uint, input CreateTypeInput) (*model.AssessmentType, error) {
	if role != model.RoleAdmin {
		return nil, PermissionError("admin access required")
	}
	name, err := normalizeTypeName(input.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.typeRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ValidationError("assessment type %q already exists", name)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	t := &model.AssessmentType{
		Name:         name,
		DisplayName:  input.DisplayName,
		Description:  input.Description,
		Instructions: input.Instructions,
		IsActive:     active,
		IsStandard:   standardTypeNames[name],
		CreatedByID:  &creatorID,
	}

	for i, qi := range input.Questions {
		q := buildQuestion(qi)
		q.QuestionNumber = i + 1
		t.Questions = append(t.Questions, q)
	}
	t.TotalQuestions = len(t.Questions)
	t.MaxScore = scoring.MaxScore(t.Questions)

	if err := s.typeRepo.Create(t); err != nil {
		return nil, PersistenceError()
	}

	s.events.Publish(utilities.EventTypeCreated, utilities.SchemaMutationPayload{AssessmentTypeID: t.ID})
	return t, nil
}

func (s *schemaService) UpdateType(role model.Role, id uint, input UpdateTypeInput) (*model.AssessmentType, error) {
	if role != model.RoleAdmin {
		return nil, PermissionError("admin access required")
	}
	t, err := s.typeRepo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("assessment type %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := normalizeTypeName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != t.Name {
			if t.IsStandard {
				return nil, PermissionError("standard assessment types cannot be renamed")
			}
			exists, err := s.typeRepo.ExistsByName(name)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ValidationError("assessment type %q already exists", name)
			}
			t.Name = name
			t.IsStandard = standardTypeNames[name]
		}
	}
	if input.DisplayName != nil {
		t.DisplayName = *input.DisplayName
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Instructions != nil {
		t.Instructions = *input.Instructions
	}
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}

	if err := s.typeRepo.Update(t); err != nil {
		return nil, PersistenceError()
	}

	s.events.Publish(utilities.EventTypeUpdated, utilities.SchemaMutationPayload{AssessmentTypeID: t.ID})
	return t, nil
}

func (s *schemaService) DeleteType(role model.Role, id uint) error {
	if role != model.RoleAdmin {
		return PermissionError("admin access required")
	}
	t, err := s.typeRepo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundError("assessment type %d not found", id)
	}
	if err != nil {
		return err
	}
	if t.IsStandard {
		return PermissionError("standard assessment types (PHQ9, GAD7, PCL5) cannot be deleted")
	}
	taken, err := s.typeRepo.CountAssessments(t.ID)
	if err != nil {
		return err
	}
	if taken > 0 {
		return IntegrityError("cannot delete assessment type: %d assessments have been taken with it", taken)
	}
	if err := s.typeRepo.Delete(t); err != nil {
		return PersistenceError()
	}

	s.events.Publish(utilities.EventTypeDeleted, utilities.SchemaMutationPayload{AssessmentTypeID: t.ID})
	return nil
}

func normalizeTypeName(name string) (string, error) {
	if !typeNamePattern.MatchString(name) {
		return "", ValidationError("name can only contain letters, numbers, and underscores")
	}
	return strings.ToUpper(name), nil
}

func buildQuestion(qi QuestionInput) model.AssessmentQuestion {
	questionType := qi.QuestionType
	if questionType == "" {
		questionType = model.QuestionMultipleChoice
	}
	required := true
	if qi.IsRequired != nil {
		required = *qi.IsRequired
	}
	q := model.AssessmentQuestion{
		QuestionText:    qi.QuestionText,
		QuestionType:    questionType,
		IsReverseScored: qi.IsReverseScored,
		IsRequired:      required,
		MinValue:        qi.MinValue,
		MaxValue:        qi.MaxValue,
	}
	for i, oi := range qi.Options {
		q.Options = append(q.Options, model.QuestionOption{
			Text:       oi.Text,
			Score:      oi.Score,
			OrderIndex: i,
		})
	}
	return q
}
