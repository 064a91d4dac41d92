package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

var _ domain.AuthProvider = (*AuthService)(nil)

type AuthService struct {
	repo   domain.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewAuthService(repo domain.UserRepository, tokens *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		logger: logger.With(zap.String("component", "auth")),
	}
}

func (s *AuthService) session(user *domain.User) (*domain.Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, ExpiresAt: expiresAt, User: user.Public()}, nil
}

func (s *AuthService) Signup(ctx context.Context, input domain.SignupInput) (*domain.Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(uuid.NewString(), input.FullName, input.Username, input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return s.session(user)
}

// Login accepts either the email address or the username as identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Session, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: lookup: %w", err)
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auth service: current user: %w", err)
	}

	public := user.Public()
	return &public, nil
}
