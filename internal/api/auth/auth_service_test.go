package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peakbaguio/peak-baguio/config"
	"github.com/peakbaguio/peak-baguio/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, username, email, passwordHash, role string) (uuid.UUID, error) {
	args := m.Called(ctx, username, email, passwordHash, role)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*types.UserAuth), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*types.UserAuth, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*types.UserAuth), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockRepository) GetRefreshToken(ctx context.Context, token string) (*RefreshTokenRecord, error) {
	args := m.Called(ctx, token)
	if rec := args.Get(0); rec != nil {
		return rec.(*RefreshTokenRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRepository) RevokeAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:     "test-secret-key-for-signing",
		Issuer:        "peak-baguio-api",
		Audience:      "peak-baguio",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestRegister_HashesPasswordBeforeStoring(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewAuthService(repo, testJWTConfig(), slog.Default())
	userID := uuid.New()

	repo.On("CreateUser", ctx, "juan", "juan@example.com",
		mock.MatchedBy(func(hash string) bool {
			return hash != "secretpassword" &&
				bcrypt.CompareHashAndPassword([]byte(hash), []byte("secretpassword")) == nil
		}), types.RoleUser).Return(userID, nil)
	repo.On("GetUserByID", ctx, userID).
		Return(&types.UserAuth{ID: userID, Username: "juan", Email: "juan@example.com", Role: types.RoleUser}, nil)

	user, err := svc.Register(ctx, "juan", "juan@example.com", "secretpassword")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	repo.AssertExpectations(t)
}

func TestLogin_IssuesValidAccessToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	cfg := testJWTConfig()
	svc := NewAuthService(repo, cfg, slog.Default())
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("secretpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", ctx, "juan@example.com").Return(&types.UserAuth{
		ID:       userID,
		Username: "juan",
		Email:    "juan@example.com",
		Password: string(hash),
		Role:     types.RoleUser,
	}, nil)
	repo.On("StoreRefreshToken", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	pair, err := svc.Login(ctx, "juan@example.com", "secretpassword")

	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	var claims types.Claims
	parsed, err := jwtlib.ParseWithClaims(pair.AccessToken, &claims, func(token *jwtlib.Token) (any, error) {
		return []byte(cfg.SecretKey), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, types.RoleUser, claims.Role)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewAuthService(repo, testJWTConfig(), slog.Default())

	hash, err := bcrypt.GenerateFromPassword([]byte("secretpassword"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetUserByEmail", ctx, "juan@example.com").Return(&types.UserAuth{
		ID:       uuid.New(),
		Email:    "juan@example.com",
		Password: string(hash),
	}, nil)

	_, err = svc.Login(ctx, "juan@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmailHidesWhichPartFailed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewAuthService(repo, testJWTConfig(), slog.Default())

	repo.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, types.ErrNotFound)

	_, err := svc.Login(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewAuthService(repo, testJWTConfig(), slog.Default())
	userID := uuid.New()
	oldToken := uuid.NewString()

	repo.On("GetRefreshToken", ctx, oldToken).Return(&RefreshTokenRecord{
		UserID:    userID,
		Token:     oldToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	repo.On("GetUserByID", ctx, userID).
		Return(&types.UserAuth{ID: userID, Role: types.RoleUser}, nil)
	repo.On("RevokeRefreshToken", ctx, oldToken).Return(nil)
	repo.On("StoreRefreshToken", ctx, userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil)

	pair, err := svc.Refresh(ctx, oldToken)

	require.NoError(t, err)
	assert.NotEqual(t, oldToken, pair.RefreshToken)
	repo.AssertCalled(t, "RevokeRefreshToken", ctx, oldToken)
}

func TestRefresh_ExpiredOrRevokedRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewAuthService(repo, testJWTConfig(), slog.Default())
	userID := uuid.New()

	expired := uuid.NewString()
	repo.On("GetRefreshToken", ctx, expired).Return(&RefreshTokenRecord{
		UserID:    userID,
		Token:     expired,
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)

	_, err := svc.Refresh(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	revokedAt := time.Now().Add(-time.Hour)
	revoked := uuid.NewString()
	repo.On("GetRefreshToken", ctx, revoked).Return(&RefreshTokenRecord{
		UserID:    userID,
		Token:     revoked,
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil)

	_, err = svc.Refresh(ctx, revoked)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
