package service

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/internal/scoring"
	"mindwell-backend/utilities"
)

// SubmissionAnswer selects one option of one question by its order position.
type SubmissionAnswer struct {
	QuestionID          uint `json:"question_id" binding:"required"`
	SelectedOptionIndex int  `json:"selected_option_index"`
}

// TakeAssessmentInput is the body of POST /assessments/take/.
type TakeAssessmentInput struct {
	AssessmentTypeID uint               `json:"assessment_type_id" binding:"required"`
	Responses        []SubmissionAnswer `json:"responses" binding:"required"`
}

// TypeSummary is the compact type descriptor embedded in a result.
type TypeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// RecommendationPayload is the snapshot of one recommendation stored with the
// result, insulated from later edits of the recommendation table.
type RecommendationPayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ActionItems json.RawMessage `json:"action_items"`
	Resources   json.RawMessage `json:"resources"`
}

// AssessmentResult is the response of a completed submission.
type AssessmentResult struct {
	ID              uint                    `json:"id"`
	AssessmentType  TypeSummary             `json:"assessment_type"`
	TotalScore      int                     `json:"total_score"`
	PercentageScore float64                 `json:"percentage_score"`
	RiskLevel       model.RiskLevel         `json:"risk_level"`
	Interpretation  string                  `json:"interpretation"`
	Recommendations []RecommendationPayload `json:"recommendations"`
	CompletedAt     time.Time               `json:"completed_at"`
}

type SubmissionService interface {
	// TakeAssessment validates, scores, classifies and persists one
	// submission. Any validation failure leaves no rows behind.
	TakeAssessment(userID uint, input TakeAssessmentInput) (*AssessmentResult, error)
	History(userID uint) ([]model.Assessment, error)
	Result(userID, id uint) (*model.Assessment, error)
}

type submissionService struct {
	typeRepo       repository.AssessmentTypeRepository
	assessmentRepo repository.AssessmentRepository
	recoRepo       repository.RecommendationRepository
	events         *utilities.EventBus
}

func NewSubmissionService(
	typeRepo repository.AssessmentTypeRepository,
	assessmentRepo repository.AssessmentRepository,
	recoRepo repository.RecommendationRepository,
	events *utilities.EventBus,
) SubmissionService {
	return &submissionService{
		typeRepo:       typeRepo,
		assessmentRepo: assessmentRepo,
		recoRepo:       recoRepo,
		events:         events,
	}
}

func (s *submissionService) TakeAssessment(userID uint, input TakeAssessmentInput) (*AssessmentResult, error) {
	assessmentType, err := s.typeRepo.GetByID(input.AssessmentTypeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ValidationError("assessment type %d does not exist", input.AssessmentTypeID)
	}
	if err != nil {
		return nil, err
	}
	if !assessmentType.IsActive {
		return nil, ValidationError("assessment type %q is not active", assessmentType.Name)
	}

	questionsByID := make(map[uint]*model.AssessmentQuestion, len(assessmentType.Questions))
	for i := range assessmentType.Questions {
		questionsByID[assessmentType.Questions[i].ID] = &assessmentType.Questions[i]
	}

	totalScore := 0
	answered := make(map[uint]bool, len(input.Responses))
	responses := make([]model.AssessmentResponse, 0, len(input.Responses))

	for _, answer := range input.Responses {
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			return nil, ValidationError("invalid question ID %d or question does not belong to this assessment type", answer.QuestionID)
		}
		if answered[answer.QuestionID] {
			return nil, ValidationError("duplicate response for question %d", answer.QuestionID)
		}
		answered[answer.QuestionID] = true

		// Options are preloaded ordered by order index; the submitted index
		// addresses that sequence.
		if answer.SelectedOptionIndex < 0 || answer.SelectedOptionIndex >= len(question.Options) {
			return nil, ValidationError(
				"invalid option index %d for question %d. Available options: %d",
				answer.SelectedOptionIndex, question.ID, len(question.Options),
			)
		}
		option := question.Options[answer.SelectedOptionIndex]

		score := option.Score
		if question.IsReverseScored {
			score = scoring.ReverseScore(score, question.MaxOptionScore())
		}
		totalScore += score

		optionID := option.ID
		responses = append(responses, model.AssessmentResponse{
			QuestionID:       question.ID,
			SelectedOptionID: &optionID,
			ResponseValue:    score,
		})
	}

	riskLevel := scoring.Classify(assessmentType.Name, totalScore, assessmentType.MaxScore)
	interpretation := scoring.Interpret(assessmentType.Name, riskLevel, totalScore)

	recommendations, err := s.lookupRecommendations(assessmentType.ID, riskLevel)
	if err != nil {
		utilities.Warn("recommendation lookup failed for type %d: %v", assessmentType.ID, err)
		recommendations = []RecommendationPayload{}
	}
	recommendationsJSON, err := json.Marshal(recommendations)
	if err != nil {
		return nil, PersistenceError()
	}

	assessment := &model.Assessment{
		UserID:           userID,
		AssessmentTypeID: assessmentType.ID,
		TotalScore:       totalScore,
		RiskLevel:        riskLevel,
		Interpretation:   interpretation,
		Recommendations:  datatypes.JSON(recommendationsJSON),
	}
	if err := s.assessmentRepo.CreateWithResponses(assessment, responses); err != nil {
		utilities.Error("failed to persist assessment for user %d: %v", userID, err)
		return nil, PersistenceError()
	}

	s.events.Publish(utilities.EventAssessmentCompleted, assessment)

	return &AssessmentResult{
		ID: assessment.ID,
		AssessmentType: TypeSummary{
			ID:          assessmentType.ID,
			Name:        assessmentType.Name,
			DisplayName: assessmentType.DisplayName,
		},
		TotalScore:      totalScore,
		PercentageScore: scoring.Percentage(totalScore, assessmentType.MaxScore),
		RiskLevel:       riskLevel,
		Interpretation:  interpretation,
		Recommendations: recommendations,
		CompletedAt:     assessment.CompletedAt,
	}, nil
}

func (s *submissionService) History(userID uint) ([]model.Assessment, error) {
	return s.assessmentRepo.ListByUser(userID)
}

func (s *submissionService) Result(userID, id uint) (*model.Assessment, error) {
	assessment, err := s.assessmentRepo.GetByIDForUser(id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFoundError("assessment %d not found", id)
	}
	return assessment, err
}

func (s *submissionService) lookupRecommendations(typeID uint, riskLevel model.RiskLevel) ([]RecommendationPayload, error) {
	recs, err := s.recoRepo.GetByTypeAndRisk(typeID, riskLevel)
	if err != nil {
		return nil, err
	}
	payload := make([]RecommendationPayload, 0, len(recs))
	for _, rec := range recs {
		payload = append(payload, RecommendationPayload{
			Title:       rec.Title,
			Description: rec.Description,
			ActionItems: json.RawMessage(rec.ActionItems),
			Resources:   json.RawMessage(rec.Resources),
		})
	}
	return payload, nil
}
