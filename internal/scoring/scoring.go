// Package scoring holds the pure scoring and risk-classification rules for
// assessment submissions. Everything here is a function of its inputs so the
// clinical thresholds can be tested without a database.
package scoring

import (
	"fmt"
	"math"

	"mindwell-backend/internal/model"
)

// ReverseScore inverts a raw option score around the question's maximum
// option score.
func ReverseScore(raw, maxOptionScore int) int {
	return maxOptionScore - raw
}

// Percentage returns totalScore as a percentage of maxScore, rounded to one
// decimal place. A zero maxScore yields 0.
func Percentage(totalScore, maxScore int) float64 {
	if maxScore == 0 {
		return 0
	}
	return math.Round(float64(totalScore)/float64(maxScore)*1000) / 10
}

// Classify maps a total score to a risk level using the per-instrument
// threshold tables. PHQ9, GAD7 and PCL5 use their clinically standard cut
// points expressed on the percentage-of-maximum scale; every other type uses
// the generic quartile table. A type with maxScore 0 is always minimal.
func Classify(typeName string, totalScore, maxScore int) model.RiskLevel {
	if maxScore == 0 {
		return model.RiskMinimal
	}
	percentage := float64(totalScore) / float64(maxScore) * 100

	switch typeName {
	case "PHQ9":
		switch {
		case percentage <= 20: // raw 0-4
			return model.RiskMinimal
		case percentage <= 40: // raw 5-9
			return model.RiskMild
		case percentage <= 60: // raw 10-14
			return model.RiskModerate
		case percentage <= 80: // raw 15-19
			return model.RiskModeratelySevere
		default: // raw 20-27
			return model.RiskSevere
		}
	case "GAD7":
		switch {
		case percentage <= 25: // raw 0-4
			return model.RiskMinimal
		case percentage <= 50: // raw 5-9
			return model.RiskMild
		case percentage <= 75: // raw 10-14
			return model.RiskModerate
		default: // raw 15-21
			return model.RiskSevere
		}
	case "PCL5":
		// PCL5 bounds are exclusive.
		switch {
		case percentage < 50:
			return model.RiskMinimal
		case percentage < 65:
			return model.RiskMild
		case percentage < 80:
			return model.RiskModerate
		default:
			return model.RiskSevere
		}
	}

	switch {
	case percentage <= 25:
		return model.RiskMinimal
	case percentage <= 50:
		return model.RiskMild
	case percentage <= 75:
		return model.RiskModerate
	default:
		return model.RiskSevere
	}
}

var interpretations = map[string]map[model.RiskLevel]string{
	"PHQ9": {
		model.RiskMinimal:          "Your responses suggest minimal depression symptoms. This is a positive sign for your mental health.",
		model.RiskMild:             "Your responses suggest mild depression symptoms. Consider speaking with a mental health professional.",
		model.RiskModerate:         "Your responses suggest moderate depression symptoms. We recommend seeking professional support.",
		model.RiskModeratelySevere: "Your responses suggest moderately severe depression symptoms. Professional help is strongly recommended.",
		model.RiskSevere:           "Your responses suggest severe depression symptoms. Please seek immediate professional help.",
	},
	"GAD7": {
		model.RiskMinimal:  "Your responses suggest minimal anxiety symptoms.",
		model.RiskMild:     "Your responses suggest mild anxiety symptoms. Consider stress management techniques.",
		model.RiskModerate: "Your responses suggest moderate anxiety symptoms. Professional support may be helpful.",
		model.RiskSevere:   "Your responses suggest severe anxiety symptoms. Please consider seeking professional help.",
	},
	"PCL5": {
		model.RiskMinimal:  "Your responses suggest minimal PTSD symptoms.",
		model.RiskMild:     "Your responses suggest some trauma-related symptoms. Consider speaking with a professional.",
		model.RiskModerate: "Your responses suggest moderate PTSD symptoms. Professional evaluation is recommended.",
		model.RiskSevere:   "Your responses suggest significant PTSD symptoms. Please seek professional help.",
	},
}

// Interpret returns the interpretation text for a (type, risk level) pair,
// falling back to a generic sentence that carries the numeric total score.
func Interpret(typeName string, riskLevel model.RiskLevel, totalScore int) string {
	if byRisk, ok := interpretations[typeName]; ok {
		if text, ok := byRisk[riskLevel]; ok {
			return text
		}
	}
	return fmt.Sprintf("Your total score is %d. Please consult with a mental health professional for proper evaluation.", totalScore)
}

// MaxScore computes a type's maximum attainable score as the sum over its
// questions of each question's best option score. Questions without options
// contribute nothing.
func MaxScore(questions []model.AssessmentQuestion) int {
	total := 0
	for i := range questions {
		if len(questions[i].Options) == 0 {
			continue
		}
		total += questions[i].MaxOptionScore()
	}
	return total
}
