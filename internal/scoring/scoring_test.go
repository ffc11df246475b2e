package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"mindwell-backend/internal/model"
)

func TestClassifyPHQ9(t *testing.T) {
	cases := []struct {
		score int
		want  model.RiskLevel
	}{
		{0, model.RiskMinimal},
		{5, model.RiskMinimal},   // 18.5%
		{6, model.RiskMild},      // 22.2%
		{10, model.RiskMild},     // 37.0%
		{11, model.RiskModerate}, // 40.7%
		{12, model.RiskModerate}, // 44.4%
		{16, model.RiskModerate}, // 59.3%
		{17, model.RiskModeratelySevere}, // 63.0%
		{21, model.RiskModeratelySevere}, // 77.8%
		{22, model.RiskSevere},   // 81.5%
		{27, model.RiskSevere},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify("PHQ9", tc.score, 27), "PHQ9 score %d", tc.score)
	}
}

func TestClassifyGAD7(t *testing.T) {
	cases := []struct {
		score int
		want  model.RiskLevel
	}{
		{0, model.RiskMinimal},
		{5, model.RiskMinimal},   // 23.8%
		{6, model.RiskMild},      // 28.6%
		{10, model.RiskMild},     // 47.6%
		{11, model.RiskModerate}, // 52.4%
		{15, model.RiskModerate}, // 71.4%
		{16, model.RiskSevere},   // 76.2%
		{21, model.RiskSevere},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify("GAD7", tc.score, 21), "GAD7 score %d", tc.score)
	}
}

func TestClassifyPCL5UsesExclusiveBounds(t *testing.T) {
	// 50% of 80 is exactly 40; the lower bound is exclusive so 40 is mild.
	assert.Equal(t, model.RiskMinimal, Classify("PCL5", 0, 80))
	assert.Equal(t, model.RiskMinimal, Classify("PCL5", 39, 80)) // 48.75%
	assert.Equal(t, model.RiskMild, Classify("PCL5", 40, 80))
	assert.Equal(t, model.RiskMild, Classify("PCL5", 51, 80))  // 63.75%
	assert.Equal(t, model.RiskModerate, Classify("PCL5", 52, 80))
	assert.Equal(t, model.RiskModerate, Classify("PCL5", 63, 80)) // 78.75%
	assert.Equal(t, model.RiskSevere, Classify("PCL5", 64, 80))   // exactly 80%
	assert.Equal(t, model.RiskSevere, Classify("PCL5", 80, 80))
}

func TestClassifyCustomTypeQuartiles(t *testing.T) {
	cases := []struct {
		score int
		want  model.RiskLevel
	}{
		{0, model.RiskMinimal},
		{10, model.RiskMinimal},  // 25%
		{11, model.RiskMild},
		{20, model.RiskMild},     // 50%
		{21, model.RiskModerate},
		{30, model.RiskModerate}, // 75%
		{31, model.RiskSevere},
		{40, model.RiskSevere},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify("WELLNESS_CHECK", tc.score, 40), "score %d of 40", tc.score)
	}
}

func TestClassifyZeroMaxScore(t *testing.T) {
	assert.Equal(t, model.RiskMinimal, Classify("PHQ9", 0, 0))
	assert.Equal(t, model.RiskMinimal, Classify("ANYTHING", 5, 0))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 44.4, Percentage(12, 27))
	assert.Equal(t, 76.2, Percentage(16, 21))
	assert.Equal(t, 100.0, Percentage(27, 27))
	assert.Equal(t, 0.0, Percentage(0, 27))
	assert.Equal(t, 0.0, Percentage(5, 0))
}

func TestReverseScore(t *testing.T) {
	assert.Equal(t, 3, ReverseScore(0, 3))
	assert.Equal(t, 0, ReverseScore(3, 3))
	assert.Equal(t, 2, ReverseScore(1, 3))
	assert.Equal(t, 4, ReverseScore(0, 4))
}

func TestInterpretKnownPair(t *testing.T) {
	text := Interpret("PHQ9", model.RiskModerate, 12)
	assert.Contains(t, text, "moderate depression")
}

func TestInterpretFallbackCarriesScore(t *testing.T) {
	text := Interpret("WELLNESS_CHECK", model.RiskMild, 17)
	assert.True(t, strings.Contains(text, "17"), "fallback text should carry the total score: %q", text)
}

func TestMaxScoreSumsBestOptionPerQuestion(t *testing.T) {
	questions := []model.AssessmentQuestion{
		{Options: []model.QuestionOption{{Score: 0}, {Score: 1}, {Score: 3}}},
		{Options: []model.QuestionOption{{Score: 2}, {Score: 5}}},
		{Options: nil},
	}
	assert.Equal(t, 8, MaxScore(questions))
	assert.Equal(t, 0, MaxScore(nil))
}
