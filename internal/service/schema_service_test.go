package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindwell-backend/internal/model"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateTypeNormalizesNameAndDerivesAggregates(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	svc := NewSchemaService(typeRepo, testBus())

	created, err := svc.CreateType(model.RoleAdmin, 1, CreateTypeInput{
		Name:        "wellness_check",
		DisplayName: "Wellness Check",
		Questions: []QuestionInput{
			{QuestionText: "q1", Options: []OptionInput{{Text: "a", Score: 0}, {Text: "b", Score: 2}}},
			{QuestionText: "q2", Options: []OptionInput{{Text: "a", Score: 0}, {Text: "b", Score: 3}}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "WELLNESS_CHECK", created.Name)
	assert.False(t, created.IsStandard)
	assert.True(t, created.IsActive)
	assert.Equal(t, 2, created.TotalQuestions)
	assert.Equal(t, 5, created.MaxScore)
	assert.Equal(t, 1, created.Questions[0].QuestionNumber)
	assert.Equal(t, 2, created.Questions[1].QuestionNumber)
	assert.Equal(t, model.QuestionMultipleChoice, created.Questions[0].QuestionType)
}

func TestCreateTypeFlagsStandardNames(t *testing.T) {
	svc := NewSchemaService(newFakeTypeRepo(), testBus())

	created, err := svc.CreateType(model.RoleAdmin, 1, CreateTypeInput{
		Name:        "phq9",
		DisplayName: "Patient Health Questionnaire-9",
	})
	require.NoError(t, err)
	assert.True(t, created.IsStandard)
}

func TestCreateTypeRejectsInvalidName(t *testing.T) {
	svc := NewSchemaService(newFakeTypeRepo(), testBus())

	_, err := svc.CreateType(model.RoleAdmin, 1, CreateTypeInput{
		Name:        "no spaces allowed",
		DisplayName: "x",
	})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)
	assert.Contains(t, se.Detail, "letters, numbers, and underscores")
}

func TestCreateTypeRejectsDuplicateName(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	typeRepo.add(&model.AssessmentType{Name: "MOOD_CHECK", IsActive: true})
	svc := NewSchemaService(typeRepo, testBus())

	_, err := svc.CreateType(model.RoleAdmin, 1, CreateTypeInput{
		Name:        "mood_check",
		DisplayName: "Mood Check",
	})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)
	assert.Contains(t, se.Detail, "already exists")
}

func TestCreateTypeRequiresAdmin(t *testing.T) {
	svc := NewSchemaService(newFakeTypeRepo(), testBus())

	for _, role := range []model.Role{model.RoleUser, model.RoleGuide} {
		_, err := svc.CreateType(role, 1, CreateTypeInput{Name: "X", DisplayName: "x"})
		se, ok := AsServiceError(err)
		require.True(t, ok, "role %s", role)
		assert.Equal(t, CodePermission, se.Code)
	}
}

func TestUpdateTypeCannotRenameStandard(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	phq9 := typeRepo.add(&model.AssessmentType{Name: "PHQ9", IsStandard: true, IsActive: true})
	svc := NewSchemaService(typeRepo, testBus())

	_, err := svc.UpdateType(model.RoleAdmin, phq9.ID, UpdateTypeInput{Name: strPtr("PHQ9_V2")})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermission, se.Code)

	// Other fields stay editable.
	updated, err := svc.UpdateType(model.RoleAdmin, phq9.ID, UpdateTypeInput{
		Description: strPtr("updated description"),
		IsActive:    boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "updated description", updated.Description)
	assert.False(t, updated.IsActive)
}

func TestDeleteTypeGuards(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	phq9 := typeRepo.add(&model.AssessmentType{Name: "PHQ9", IsStandard: true})
	custom := typeRepo.add(&model.AssessmentType{Name: "CUSTOM"})
	taken := typeRepo.add(&model.AssessmentType{Name: "TAKEN"})
	typeRepo.counts[taken.ID] = 3
	svc := NewSchemaService(typeRepo, testBus())

	err := svc.DeleteType(model.RoleAdmin, phq9.ID)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermission, se.Code)

	err = svc.DeleteType(model.RoleAdmin, taken.ID)
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeIntegrity, se.Code)
	assert.Contains(t, se.Detail, "3 assessments")

	require.NoError(t, svc.DeleteType(model.RoleAdmin, custom.ID))
	_, err = svc.GetTypeByID(custom.ID)
	se, ok = AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code)
}

func TestListAllTypesRequiresAdmin(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	typeRepo.add(&model.AssessmentType{Name: "ACTIVE", IsActive: true})
	typeRepo.add(&model.AssessmentType{Name: "INACTIVE", IsActive: false})
	svc := NewSchemaService(typeRepo, testBus())

	_, err := svc.ListAllTypes(model.RoleUser)
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodePermission, se.Code)

	all, err := svc.ListAllTypes(model.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListActiveTypes()
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
