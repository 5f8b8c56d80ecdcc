package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// ErrInvalidCredentials is returned for bad email/password combinations and
// for expired or revoked refresh tokens. It deliberately hides which part
// failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service defines the business logic contract for authentication.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*types.UserAuth, error)
	Login(ctx context.Context, email, password string) (*types.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*types.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error)
}

type ServiceImpl struct {
	repo   Repository
	jwtCfg config.JWTConfig
	logger *slog.Logger
}

func NewAuthService(repo Repository, jwtCfg config.JWTConfig, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		jwtCfg: jwtCfg,
		logger: logger,
	}
}

func (s *ServiceImpl) Register(ctx context.Context, username, email, password string) (*types.UserAuth, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.repo.CreateUser(ctx, username, email, string(hashed), types.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	return s.repo.GetUserByID(ctx, id)
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (*types.TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (*types.TokenPair, error) {
	rec, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error fetching refresh token: %w", err)
	}

	if time.Now().After(rec.ExpiresAt) || rec.RevokedAt != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByID(ctx, rec.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user for refresh: %w", err)
	}

	// Rotate: revoke the presented token, hand out a fresh pair.
	if err := s.repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke rotated refresh token", slog.Any("error", err))
	}

	return s.issueTokens(ctx, user)
}

func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*types.UserAuth, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (s *ServiceImpl) issueTokens(ctx context.Context, user *types.UserAuth) (*types.TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.NewString()
	expiresAt := time.Now().Add(s.jwtCfg.RefreshExpiry)
	if err := s.repo.StoreRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &types.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *ServiceImpl) generateAccessToken(user *types.UserAuth) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.AccessExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}
