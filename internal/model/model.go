package model

import (
	"time"

	"gorm.io/datatypes"
)

// Role is the closed set of actor roles known to the platform.
type Role string

const (
	RoleUser  Role = "user"
	RoleGuide Role = "guide"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// CanManageSchema reports whether the role may mutate assessment schema.
func (r Role) CanManageSchema() bool {
	return r == RoleAdmin || r == RoleGuide
}

// RiskLevel is the ordinal risk classification of a completed assessment.
type RiskLevel string

const (
	RiskMinimal          RiskLevel = "minimal"
	RiskMild             RiskLevel = "mild"
	RiskModerate         RiskLevel = "moderate"
	RiskModeratelySevere RiskLevel = "moderately_severe"
	RiskSevere           RiskLevel = "severe"
)

// QuestionType enumerates the supported question kinds. Scoring is driven by
// the option list regardless of kind; the kind is presentation metadata.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionMultipleSelect QuestionType = "multiple_select"
	QuestionTextInput      QuestionType = "text_input"
	QuestionRatingScale    QuestionType = "rating_scale"
	QuestionYesNo          QuestionType = "yes_no"
	QuestionLikertScale    QuestionType = "likert_scale"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"`
	Role      Role      `json:"role" gorm:"type:varchar(10);default:'user'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssessmentType is the canonical definition of one questionnaire.
// TotalQuestions and MaxScore are derived aggregates, recomputed on every
// schema mutation and never taken from client input.
type AssessmentType struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	Name           string               `json:"name" gorm:"uniqueIndex;not null"`
	DisplayName    string               `json:"display_name" gorm:"not null"`
	Description    string               `json:"description"`
	Instructions   string               `json:"instructions"`
	TotalQuestions int                  `json:"total_questions" gorm:"default:0"`
	MaxScore       int                  `json:"max_score" gorm:"default:0"`
	IsActive       bool                 `json:"is_active" gorm:"default:true"`
	IsStandard     bool                 `json:"is_standard" gorm:"default:false"`
	CreatedByID    *uint                `json:"created_by,omitempty"`
	Questions      []AssessmentQuestion `json:"questions,omitempty" gorm:"foreignKey:AssessmentTypeID"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// AssessmentQuestion belongs to one type; QuestionNumber is unique within the
// type and kept contiguous 1..N by the question service.
type AssessmentQuestion struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	AssessmentTypeID uint             `json:"assessment_type_id" gorm:"not null;uniqueIndex:idx_type_question_number"`
	QuestionNumber   int              `json:"question_number" gorm:"not null;uniqueIndex:idx_type_question_number"`
	QuestionText     string           `json:"question_text" gorm:"not null"`
	QuestionType     QuestionType     `json:"question_type" gorm:"type:varchar(20);default:'multiple_choice'"`
	IsReverseScored  bool             `json:"is_reverse_scored" gorm:"default:false"`
	IsRequired       bool             `json:"is_required" gorm:"default:true"`
	MinValue         *int             `json:"min_value,omitempty"`
	MaxValue         *int             `json:"max_value,omitempty"`
	Options          []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// MaxOptionScore returns the highest option score of the question, or 0 when
// it has no options.
func (q *AssessmentQuestion) MaxOptionScore() int {
	max := 0
	for i, opt := range q.Options {
		if i == 0 || opt.Score > max {
			max = opt.Score
		}
	}
	return max
}

// QuestionOption is one selectable answer; OrderIndex is the position the
// submission API indexes into.
type QuestionOption struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	Score      int    `json:"score" gorm:"not null"`
	OrderIndex int    `json:"order" gorm:"not null"`
}

// Assessment is an immutable completed submission. Rows are created once by
// the submission service, together with their responses, and never updated.
type Assessment struct {
	ID               uint                 `json:"id" gorm:"primaryKey"`
	UserID           uint                 `json:"user_id" gorm:"not null;index"`
	AssessmentTypeID uint                 `json:"assessment_type_id" gorm:"not null"`
	AssessmentType   AssessmentType       `json:"assessment_type" gorm:"foreignKey:AssessmentTypeID"`
	TotalScore       int                  `json:"total_score" gorm:"not null"`
	RiskLevel        RiskLevel            `json:"risk_level" gorm:"type:varchar(20);not null"`
	Interpretation   string               `json:"interpretation"`
	Recommendations  datatypes.JSON       `json:"recommendations" gorm:"type:jsonb"`
	Responses        []AssessmentResponse `json:"responses,omitempty" gorm:"foreignKey:AssessmentID"`
	CompletedAt      time.Time            `json:"completed_at" gorm:"autoCreateTime"`
}

// AssessmentResponse records one answered question of an assessment.
type AssessmentResponse struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	AssessmentID     uint      `json:"assessment_id" gorm:"not null;uniqueIndex:idx_assessment_question"`
	QuestionID       uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_assessment_question"`
	SelectedOptionID *uint     `json:"selected_option_id,omitempty"`
	ResponseValue    int       `json:"response_value" gorm:"not null"`
	ResponseTime     time.Time `json:"response_time" gorm:"autoCreateTime"`
}

// AssessmentRecommendation is the static lookup row consumed by the
// submission service, keyed by (type, risk level) and ordered by priority.
type AssessmentRecommendation struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	AssessmentTypeID uint           `json:"assessment_type_id" gorm:"not null;index:idx_reco_type_risk"`
	RiskLevel        RiskLevel      `json:"risk_level" gorm:"type:varchar(20);not null;index:idx_reco_type_risk"`
	Title            string         `json:"title" gorm:"not null"`
	Description      string         `json:"description"`
	ActionItems      datatypes.JSON `json:"action_items" gorm:"type:jsonb"`
	Resources        datatypes.JSON `json:"resources" gorm:"type:jsonb"`
	Priority         int            `json:"priority" gorm:"default:1"`
}
