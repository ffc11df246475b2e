package service

import (
	"errors"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/utilities"
)

// CreateQuestionInput adds one question to an existing type.
type CreateQuestionInput struct {
	AssessmentTypeID uint `json:"assessment_type_id" binding:"required"`
	QuestionInput
}

// UpdateQuestionInput carries a partial question update. A non-nil Options
// slice replaces the question's entire option set.
type UpdateQuestionInput struct {
	QuestionText    *string             `json:"question_text"`
	QuestionType    *model.QuestionType `json:"question_type"`
	IsReverseScored *bool               `json:"is_reverse_scored"`
	IsRequired      *bool               `json:"is_required"`
	MinValue        *int                `json:"min_value"`
	MaxValue        *int                `json:"max_value"`
	Options         *[]OptionInput      `json:"options"`
}

// BulkCreateQuestionsInput creates a batch of questions as one transaction.
type BulkCreateQuestionsInput struct {
	AssessmentTypeID uint            `json:"assessment_type_id" binding:"required"`
	Questions        []QuestionInput `json:"questions" binding:"required"`
}

type QuestionService interface {
	GetQuestion(id uint) (*model.AssessmentQuestion, error)
	CreateQuestion(role model.Role, input CreateQuestionInput) (*model.AssessmentQuestion, error)
	BulkCreateQuestions(role model.Role, input BulkCreateQuestionsInput) ([]model.AssessmentQuestion, error)
	UpdateQuestion(role model.Role, id uint, input UpdateQuestionInput) (*model.AssessmentQuestion, error)
	DeleteQuestion(role model.Role, id uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	typeRepo     repository.AssessmentTypeRepository
	events       *utilities.EventBus
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	typeRepo repository.AssessmentTypeRepository,
	events *utilities.EventBus,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		typeRepo:     typeRepo,
		events:       events,
	}
}

func (s *questionService) GetQuestion(id uint) (*model.AssessmentQuestion, error) {
	q, err := s.questionRepo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("question %d not found", id)
	}
	return q, err
}

func (s *questionService) CreateQuestion(role model.Role, input CreateQuestionInput) (*model.AssessmentQuestion, error) {
	if !role.CanManageSchema() {
		return nil, PermissionError("only admins and guides can create questions")
	}
	if _, err := s.typeRepo.GetByID(input.AssessmentTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ValidationError("assessment type %d does not exist", input.AssessmentTypeID)
		}
		return nil, err
	}

	question := buildQuestion(input.QuestionInput)
	question.AssessmentTypeID = input.AssessmentTypeID
	if err := s.questionRepo.Create(&question); err != nil {
		return nil, PersistenceError()
	}

	s.events.Publish(utilities.EventQuestionCreated, utilities.SchemaMutationPayload{
		AssessmentTypeID: question.AssessmentTypeID,
		QuestionID:       question.ID,
	})
	return &question, nil
}

func (s *questionService) BulkCreateQuestions(role model.Role, input BulkCreateQuestionsInput) ([]model.AssessmentQuestion, error) {
	if !role.CanManageSchema() {
		return nil, PermissionError("only admins and guides can create questions")
	}
	if len(input.Questions) == 0 {
		return nil, ValidationError("questions must not be empty")
	}
	if _, err := s.typeRepo.GetByID(input.AssessmentTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ValidationError("assessment type %d does not exist", input.AssessmentTypeID)
		}
		return nil, err
	}

	questions := make([]model.AssessmentQuestion, 0, len(input.Questions))
	for _, qi := range input.Questions {
		questions = append(questions, buildQuestion(qi))
	}
	if err := s.questionRepo.BulkCreate(input.AssessmentTypeID, questions); err != nil {
		return nil, PersistenceError()
	}

	s.events.Publish(utilities.EventQuestionCreated, utilities.SchemaMutationPayload{
		AssessmentTypeID: input.AssessmentTypeID,
	})
	return questions, nil
}

func (s *questionService) UpdateQuestion(role model.Role, id uint, input UpdateQuestionInput) (*model.AssessmentQuestion, error) {
	if !role.CanManageSchema() {
		return nil, PermissionError("only admins and guides can edit questions")
	}
	question, err := s.questionRepo.GetByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("question %d not found", id)
	}
	if err != nil {
		return nil, err
	}

	if input.QuestionText != nil {
		question.QuestionText = *input.QuestionText
	}
	if input.QuestionType != nil {
		question.QuestionType = *input.QuestionType
	}
	if input.IsReverseScored != nil {
		question.IsReverseScored = *input.IsReverseScored
	}
	if input.IsRequired != nil {
		question.IsRequired = *input.IsRequired
	}
	if input.MinValue != nil {
		question.MinValue = input.MinValue
	}
	if input.MaxValue != nil {
		question.MaxValue = input.MaxValue
	}

	var options []model.QuestionOption
	replaceOptions := input.Options != nil
	if replaceOptions {
		for i, oi := range *input.Options {
			options = append(options, model.QuestionOption{
				Text:       oi.Text,
				Score:      oi.Score,
				OrderIndex: i,
			})
		}
	}

	if err := s.questionRepo.Update(question, options, replaceOptions); err != nil {
		return nil, PersistenceError()
	}

	s.events.Publish(utilities.EventQuestionUpdated, utilities.SchemaMutationPayload{
		AssessmentTypeID: question.AssessmentTypeID,
		QuestionID:       question.ID,
	})
	return question, nil
}

func (s *questionService) DeleteQuestion(role model.Role, id uint) error {
	if !role.CanManageSchema() {
		return PermissionError("only admins and guides can delete questions")
	}
	typeID, err := s.questionRepo.DeleteAndRenumber(id)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFoundError("question %d not found", id)
	}
	if err != nil {
		return PersistenceError()
	}

	s.events.Publish(utilities.EventQuestionDeleted, utilities.SchemaMutationPayload{
		AssessmentTypeID: typeID,
		QuestionID:       id,
	})
	return nil
}
