package main

import (
	"encoding/json"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/internal/scoring"
	"mindwell-backend/utilities"
)

// seedStandardData installs the standard instruments, their recommendations
// and a bootstrap admin account. Each piece is skipped when it already exists,
// so it is safe to run on every startup.
func seedStandardData(
	userRepo repository.UserRepository,
	typeRepo repository.AssessmentTypeRepository,
	recoRepo repository.RecommendationRepository,
) error {
	if err := seedAdminUser(userRepo); err != nil {
		return err
	}
	for _, def := range standardInstruments() {
		if err := seedInstrument(typeRepo, recoRepo, def); err != nil {
			return err
		}
	}
	return nil
}

func seedAdminUser(userRepo repository.UserRepository) error {
	_, err := userRepo.GetByEmail("admin@mindwell.local")
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("change-me-on-first-login"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{
		Username: "admin",
		Email:    "admin@mindwell.local",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}
	if err := userRepo.Create(&admin); err != nil {
		return err
	}
	utilities.Info("seeded bootstrap admin account %s", admin.Email)
	return nil
}

type instrumentDef struct {
	name            string
	displayName     string
	description     string
	instructions    string
	optionTexts     []string
	questionTexts   []string
	recommendations []recommendationDef
}

type recommendationDef struct {
	risk        model.RiskLevel
	title       string
	description string
	actionItems []string
	resources   []string
	priority    int
}

func seedInstrument(
	typeRepo repository.AssessmentTypeRepository,
	recoRepo repository.RecommendationRepository,
	def instrumentDef,
) error {
	exists, err := typeRepo.ExistsByName(def.name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	questions := make([]model.AssessmentQuestion, len(def.questionTexts))
	for i, text := range def.questionTexts {
		options := make([]model.QuestionOption, len(def.optionTexts))
		for j, optText := range def.optionTexts {
			options[j] = model.QuestionOption{Text: optText, Score: j, OrderIndex: j}
		}
		questions[i] = model.AssessmentQuestion{
			QuestionNumber: i + 1,
			QuestionText:   text,
			QuestionType:   model.QuestionMultipleChoice,
			IsRequired:     true,
			Options:        options,
		}
	}

	assessmentType := model.AssessmentType{
		Name:           def.name,
		DisplayName:    def.displayName,
		Description:    def.description,
		Instructions:   def.instructions,
		IsActive:       true,
		IsStandard:     true,
		TotalQuestions: len(questions),
		MaxScore:       scoring.MaxScore(questions),
		Questions:      questions,
	}
	if err := typeRepo.Create(&assessmentType); err != nil {
		return err
	}

	for _, r := range def.recommendations {
		reco := model.AssessmentRecommendation{
			AssessmentTypeID: assessmentType.ID,
			RiskLevel:        r.risk,
			Title:            r.title,
			Description:      r.description,
			ActionItems:      mustJSON(r.actionItems),
			Resources:        mustJSON(r.resources),
			Priority:         r.priority,
		}
		if err := recoRepo.Create(&reco); err != nil {
			return err
		}
	}

	utilities.Info("seeded standard instrument %s (%d questions, max score %d)",
		def.name, assessmentType.TotalQuestions, assessmentType.MaxScore)
	return nil
}

func mustJSON(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

var frequencyOptions = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

var severityOptions = []string{
	"Not at all",
	"A little bit",
	"Moderately",
	"Quite a bit",
	"Extremely",
}

func standardInstruments() []instrumentDef {
	return []instrumentDef{
		{
			name:         "PHQ9",
			displayName:  "Patient Health Questionnaire-9 (Depression)",
			description:  "Nine-item screening instrument for depression severity.",
			instructions: "Over the last 2 weeks, how often have you been bothered by any of the following problems?",
			optionTexts:  frequencyOptions,
			questionTexts: []string{
				"Little interest or pleasure in doing things",
				"Feeling down, depressed, or hopeless",
				"Trouble falling or staying asleep, or sleeping too much",
				"Feeling tired or having little energy",
				"Poor appetite or overeating",
				"Feeling bad about yourself, or that you are a failure, or have let yourself or your family down",
				"Trouble concentrating on things, such as reading the newspaper or watching television",
				"Moving or speaking so slowly that other people could have noticed? Or the opposite, being so fidgety or restless that you have been moving around a lot more than usual",
				"Thoughts that you would be better off dead or of hurting yourself in some way",
			},
			recommendations: []recommendationDef{
				{
					risk:        model.RiskMinimal,
					title:       "Keep up your healthy habits",
					description: "Your responses suggest minimal depressive symptoms.",
					actionItems: []string{"Maintain regular sleep and exercise routines", "Stay connected with friends and family"},
					resources:   []string{"Wellness library: building daily routines"},
					priority:    1,
				},
				{
					risk:        model.RiskMild,
					title:       "Monitor your mood",
					description: "Mild symptoms often respond well to self-care and routine.",
					actionItems: []string{"Track your mood for two weeks", "Schedule enjoyable activities"},
					resources:   []string{"Guided journaling exercises"},
					priority:    1,
				},
				{
					risk:        model.RiskModerate,
					title:       "Consider talking to a professional",
					description: "Moderate symptoms benefit from structured support.",
					actionItems: []string{"Book a session with a counselor", "Share how you are feeling with someone you trust"},
					resources:   []string{"Directory of licensed therapists", "Cognitive behavioral therapy basics"},
					priority:    2,
				},
				{
					risk:        model.RiskModeratelySevere,
					title:       "Seek professional support soon",
					description: "Your responses indicate moderately severe symptoms.",
					actionItems: []string{"Contact a mental health professional this week", "Avoid making major decisions while feeling low"},
					resources:   []string{"Directory of licensed therapists"},
					priority:    3,
				},
				{
					risk:        model.RiskSevere,
					title:       "Reach out for help now",
					description: "Severe symptoms warrant prompt professional care.",
					actionItems: []string{"Contact a crisis line or mental health professional today", "Tell someone close to you how you are feeling"},
					resources:   []string{"988 Suicide & Crisis Lifeline", "Emergency mental health services"},
					priority:    4,
				},
			},
		},
		{
			name:         "GAD7",
			displayName:  "Generalized Anxiety Disorder-7",
			description:  "Seven-item screening instrument for anxiety severity.",
			instructions: "Over the last 2 weeks, how often have you been bothered by the following problems?",
			optionTexts:  frequencyOptions,
			questionTexts: []string{
				"Feeling nervous, anxious, or on edge",
				"Not being able to stop or control worrying",
				"Worrying too much about different things",
				"Trouble relaxing",
				"Being so restless that it is hard to sit still",
				"Becoming easily annoyed or irritable",
				"Feeling afraid, as if something awful might happen",
			},
			recommendations: []recommendationDef{
				{
					risk:        model.RiskMinimal,
					title:       "Your anxiety levels look manageable",
					description: "Minimal anxiety symptoms reported.",
					actionItems: []string{"Continue stress-management practices that work for you"},
					resources:   []string{"Breathing exercise library"},
					priority:    1,
				},
				{
					risk:        model.RiskMild,
					title:       "Practice relaxation techniques",
					description: "Mild anxiety often improves with regular relaxation practice.",
					actionItems: []string{"Try a 10-minute daily breathing exercise", "Limit caffeine late in the day"},
					resources:   []string{"Progressive muscle relaxation guide"},
					priority:    1,
				},
				{
					risk:        model.RiskModerate,
					title:       "Structured support can help",
					description: "Moderate anxiety symptoms benefit from professional guidance.",
					actionItems: []string{"Consider a consultation with a therapist", "Identify and note your main worry triggers"},
					resources:   []string{"Directory of licensed therapists", "Anxiety workbook"},
					priority:    2,
				},
				{
					risk:        model.RiskSevere,
					title:       "Seek professional care",
					description: "Severe anxiety symptoms warrant prompt attention.",
					actionItems: []string{"Contact a mental health professional this week"},
					resources:   []string{"Directory of licensed therapists", "Crisis support lines"},
					priority:    4,
				},
			},
		},
		{
			name:         "PCL5",
			displayName:  "PTSD Checklist for DSM-5",
			description:  "Twenty-item screening instrument for post-traumatic stress symptoms.",
			instructions: "In the past month, how much were you bothered by each of the following problems?",
			optionTexts:  severityOptions,
			questionTexts: []string{
				"Repeated, disturbing, and unwanted memories of the stressful experience",
				"Repeated, disturbing dreams of the stressful experience",
				"Suddenly feeling or acting as if the stressful experience were actually happening again",
				"Feeling very upset when something reminded you of the stressful experience",
				"Having strong physical reactions when something reminded you of the stressful experience",
				"Avoiding memories, thoughts, or feelings related to the stressful experience",
				"Avoiding external reminders of the stressful experience",
				"Trouble remembering important parts of the stressful experience",
				"Having strong negative beliefs about yourself, other people, or the world",
				"Blaming yourself or someone else for the stressful experience or what happened after it",
				"Having strong negative feelings such as fear, horror, anger, guilt, or shame",
				"Loss of interest in activities that you used to enjoy",
				"Feeling distant or cut off from other people",
				"Trouble experiencing positive feelings",
				"Irritable behavior, angry outbursts, or acting aggressively",
				"Taking too many risks or doing things that could cause you harm",
				"Being \"superalert\" or watchful or on guard",
				"Feeling jumpy or easily startled",
				"Having difficulty concentrating",
				"Trouble falling or staying asleep",
			},
			recommendations: []recommendationDef{
				{
					risk:        model.RiskMinimal,
					title:       "Low post-traumatic stress indicators",
					description: "Your responses suggest minimal trauma-related symptoms.",
					actionItems: []string{"Keep using the coping strategies that work for you"},
					resources:   []string{"Grounding technique library"},
					priority:    1,
				},
				{
					risk:        model.RiskModerate,
					title:       "Trauma-informed support may help",
					description: "Moderate symptoms respond well to trauma-focused therapy.",
					actionItems: []string{"Consider a consultation with a trauma-informed therapist", "Practice grounding exercises when distressed"},
					resources:   []string{"Directory of trauma specialists"},
					priority:    2,
				},
				{
					risk:        model.RiskModeratelySevere,
					title:       "Professional evaluation recommended",
					description: "Your responses indicate significant trauma-related symptoms.",
					actionItems: []string{"Schedule an evaluation with a trauma specialist", "Lean on trusted people for support"},
					resources:   []string{"Directory of trauma specialists", "PTSD treatment overview"},
					priority:    3,
				},
				{
					risk:        model.RiskSevere,
					title:       "Reach out for specialized care now",
					description: "Severe symptoms warrant prompt specialized treatment.",
					actionItems: []string{"Contact a trauma specialist or crisis service today"},
					resources:   []string{"988 Suicide & Crisis Lifeline", "Veterans Crisis Line"},
					priority:    4,
				},
			},
		},
	}
}
