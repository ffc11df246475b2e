package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mindwell-backend/internal/model"
	"mindwell-backend/utilities"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, AuthService) {
	t.Helper()
	utilities.ConfigureTokens("test-access-secret", "test-refresh-secret", 0, 0)
	userRepo := newFakeUserRepo()
	return userRepo, NewAuthService(userRepo)
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	userRepo, svc := newAuthFixture(t)

	user := &model.User{Username: "ada", Email: "ada@example.com", Password: "s3cret"}
	require.NoError(t, svc.Register(user))

	stored := userRepo.users[user.ID]
	require.NotNil(t, stored)
	assert.Equal(t, model.RoleUser, stored.Role)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture(t)

	require.NoError(t, svc.Register(&model.User{Username: "ada", Email: "ada@example.com", Password: "x"}))
	err := svc.Register(&model.User{Username: "ada2", Email: "ada@example.com", Password: "y"})
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeIntegrity, se.Code)
}

func TestLoginIssuesTokens(t *testing.T) {
	_, svc := newAuthFixture(t)
	require.NoError(t, svc.Register(&model.User{Username: "ada", Email: "ada@example.com", Password: "s3cret"}))

	user, tokens, err := svc.Login("ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, svc := newAuthFixture(t)
	require.NoError(t, svc.Register(&model.User{Username: "ada", Email: "ada@example.com", Password: "s3cret"}))

	_, _, err := svc.Login("ada@example.com", "wrong")
	se, ok := AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, se.Code)
	// same message for unknown email and wrong password
	_, _, err2 := svc.Login("nobody@example.com", "wrong")
	se2, _ := AsServiceError(err2)
	assert.Equal(t, se.Detail, se2.Detail)
}
