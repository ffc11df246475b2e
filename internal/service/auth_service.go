package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/utilities"
)

// TokenPair is returned on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService interface {
	Register(user *model.User) error
	Login(email, password string) (*model.User, *TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(user *model.User) error {
	if user.Email == "" || user.Username == "" {
		return ValidationError("username and email are required")
	}
	if user.Password == "" {
		return ValidationError("password cannot be empty")
	}

	existing, err := s.userRepo.GetByEmail(user.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil {
		return IntegrityError("email already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return PersistenceError()
	}
	user.Password = string(hashed)
	if !user.Role.Valid() {
		user.Role = model.RoleUser
	}

	if err := s.userRepo.Create(user); err != nil {
		return PersistenceError()
	}
	return nil
}

func (s *authService) Login(email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ValidationError("invalid email or password")
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ValidationError("invalid email or password")
	}

	access, refresh, err := utilities.GenerateTokens(user)
	if err != nil {
		return nil, nil, PersistenceError()
	}
	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(refreshToken string) (*TokenPair, error) {
	access, refresh, err := utilities.RefreshTokens(refreshToken)
	if err != nil {
		return nil, ValidationError("invalid or expired refresh token")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
