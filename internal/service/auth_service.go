package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/joaomluz/desafio-teddy-open-finance/internal/auth"
	apperrors "github.com/joaomluz/desafio-teddy-open-finance/internal/errors"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/model"
	"github.com/joaomluz/desafio-teddy-open-finance/internal/repository"
)

const bcryptCost = 10

const (
	// SeedUserEmail is the well-known credential created on first boot.
	SeedUserEmail    = "admin@example.com"
	seedUserPassword = "admin123"
	seedRetryDelay   = 5 * time.Second
)

// TokenResult is the payload returned on successful token issuance.
type TokenResult struct {
	AccessToken string    `json:"access_token"`
	User        TokenUser `json:"user"`
}

// TokenUser is the user projection embedded in login responses.
type TokenUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthService handles authentication operations.
type AuthService interface {
	// Authenticate looks up the user by exact email match and verifies the
	// password against the stored bcrypt hash. Both failure modes return
	// ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	// IssueToken signs a bearer token for the user.
	IssueToken(user *model.User) (*TokenResult, error)
	// Login is Authenticate followed by IssueToken.
	Login(ctx context.Context, email, password string) (*TokenResult, error)
	// EnsureSeedUser creates the well-known seed credential if absent.
	EnsureSeedUser(ctx context.Context) error
	// BootstrapSeedUser runs EnsureSeedUser in the background with one
	// retry after a fixed delay. Failures are logged, never propagated.
	BootstrapSeedUser(ctx context.Context)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	log        *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, log *logrus.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		log:        log,
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) IssueToken(user *model.User) (*TokenResult, error) {
	if user == nil || user.ID == uuid.Nil || user.Email == "" {
		return nil, apperrors.ErrInvalidUserData
	}

	token, err := s.jwtService.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &TokenResult{
		AccessToken: token,
		User: TokenUser{
			ID:    user.ID.String(),
			Email: user.Email,
		},
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.IssueToken(user)
}

func (s *authService) EnsureSeedUser(ctx context.Context) error {
	if _, err := s.userRepo.FindByEmail(ctx, SeedUserEmail); err == nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedUserPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	user := &model.User{
		Email:        SeedUserEmail,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create seed user: %w", err)
	}

	s.log.WithField("email", SeedUserEmail).Info("seed user created")
	return nil
}

// BootstrapSeedUser is best-effort: the database may not be reachable
// yet when the process starts, so a failure is retried once and then
// dropped without affecting the request path.
func (s *authService) BootstrapSeedUser(ctx context.Context) {
	err := s.EnsureSeedUser(ctx)
	if err == nil {
		return
	}
	s.log.WithError(err).Warn("seed user bootstrap failed, retrying once")

	select {
	case <-ctx.Done():
		return
	case <-time.After(seedRetryDelay):
	}

	if err := s.EnsureSeedUser(ctx); err != nil {
		s.log.WithError(err).Error("seed user bootstrap failed (retry)")
	}
}
