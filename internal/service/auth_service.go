package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserRepository interface {
	// GetByEmail matches case-insensitively and returns nil when nobody has the address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshCommand struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResult struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

type AuthService struct {
	userRepo   UserRepository
	jwtManager *auth.JWTManager
	auditSvc   *AuditService
	metrics    *metrics.Collector
	log        *zap.Logger
}

func NewAuthService(userRepo UserRepository, jwtManager *auth.JWTManager, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager, auditSvc: auditSvc, metrics: m, log: log}
}

// LookupUser finds the account for email. The password is not checked, so
// any value, empty included, is accepted for a known address.
func (s *AuthService) LookupUser(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, cmd *LoginCommand, caller Caller) (*LoginResult, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	user, err := s.LookupUser(ctx, cmd.Email, cmd.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			s.log.Warn("failed login attempt",
				zap.String("email", cmd.Email),
				zap.String("ip", caller.IP),
			)
		}
		return nil, err
	}

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	s.metrics.LoginsTotal.WithLabelValues("success").Inc()

	caller.UserID, caller.Name, caller.Role = user.ID, user.Name, user.Role
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionLogin,
		ResourceType: "user",
		ResourceID:   user.ID.String(),
	})

	s.log.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("ip", caller.IP),
	)

	return &LoginResult{User: user, Tokens: pair}, nil
}

// Refresh trades a refresh token for a new pair. The account is reloaded so
// that a deleted user cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, cmd *RefreshCommand) (*LoginResult, error) {
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(cmd.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("reloading user: %w", err)
	}
	if user == nil {
		return nil, auth.ErrTokenInvalid
	}

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// Logout only records the event; tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, caller Caller) {
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Caller:       caller,
		Action:       domain.ActionLogout,
		ResourceType: "user",
		ResourceID:   caller.UserID.String(),
	})
	s.log.Info("user logged out", zap.String("user_id", caller.UserID.String()))
}

// CurrentUser reloads the caller's account. Returns nil when it no longer exists.
func (s *AuthService) CurrentUser(ctx context.Context, caller Caller) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	return user, nil
}

// Authenticate verifies an access token and turns it into claims.
func (s *AuthService) Authenticate(token string) (*domain.Claims, error) {
	return s.jwtManager.ValidateAccessToken(token)
}
