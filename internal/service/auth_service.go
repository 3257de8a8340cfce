package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/todo-api/internal/domain"
	"github.com/dom/todo-api/internal/repository"
	"github.com/dom/todo-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrMissingCredentials = errors.New("username and password are required")
)

type AuthService struct {
	userRepo    repository.UserRepository
	revocations repository.RevocationRepository
	issuer      *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, revocations repository.RevocationRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		revocations: revocations,
		issuer:      issuer,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	// Check if username exists
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, ErrUsernameExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Concurrent registration of the same username loses the race on
		// the unique index rather than the pre-check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and mints an access token. An unknown username
// and a wrong password return the same error so callers cannot probe which
// usernames exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	signed, _, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Logout revokes the presented token by its ID, keeping the entry until the
// token would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.revocations.Revoke(ctx, tokenID, expiresAt)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
