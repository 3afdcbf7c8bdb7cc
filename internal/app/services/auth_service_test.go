package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/app/models/dto"
	"github.com/tutorhive/tutorhive/internal/app/repositories"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
	"github.com/tutorhive/tutorhive/internal/pkg/auth"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	user.IsActive = true
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeTokenRepo struct {
	tokens map[string]*repositories.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*repositories.RefreshToken)}
}

func (f *fakeTokenRepo) Store(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.tokens[token] = &repositories.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeTokenRepo) Get(_ context.Context, token string) (*repositories.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return rt, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	rt, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rt.Revoked = true
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "tutorhive.test",
	})
	return NewAuthService(userRepo, tokenRepo, jwtService, zerolog.Nop()), userRepo, tokenRepo
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
		FullName: "Linh Tran",
		RoleType: "LEARNER",
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	service, _, _ := newAuthService(t)

	req := registerRequest()
	req.Email = "  Linh@Example.com "

	user, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "linh@example.com", user.Email)
	require.Equal(t, models.RoleLearner, user.RoleType)
	require.NotEqual(t, "s3cret-pass", user.Password) // stored hashed
}

func TestRegisterValidation(t *testing.T) {
	service, _, _ := newAuthService(t)

	tests := []struct {
		name   string
		mutate func(*dto.RegisterRequest)
	}{
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "short" }},
		{"unknown role", func(r *dto.RegisterRequest) { r.RoleType = "ADMIN" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(req)

			_, err := service.Register(context.Background(), req)
			require.True(t, errors.Is(err, apperrors.ErrValidationFailed))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Register(ctx, registerRequest())
	require.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
}

func TestLoginIssuesValidTokenPair(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	user, tokens, err := service.Login(ctx, &dto.LoginRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Equal(t, "Bearer", tokens.TokenType)

	// The access token round-trips through the JWT service
	claims, err := service.jwtService.ValidateAndExtractClaims(tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
	require.Equal(t, "linh@example.com", claims.Email)
	require.Equal(t, string(models.RoleLearner), claims.RoleType)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, _, err = service.Login(ctx, &dto.LoginRequest{Email: "linh@example.com", Password: "wrong"})
	require.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, _, err := service.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLoginDisabledAccount(t *testing.T) {
	service, userRepo, _ := newAuthService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)
	userRepo.users[user.ID].IsActive = false

	_, _, err = service.Login(ctx, &dto.LoginRequest{Email: "linh@example.com", Password: "s3cret-pass"})
	require.True(t, errors.Is(err, apperrors.ErrAccountDisabled))
}

func TestRefreshRotatesToken(t *testing.T) {
	service, _, tokenRepo := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)
	_, tokens, err := service.Login(ctx, &dto.LoginRequest{Email: "linh@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked and cannot be used again
	require.True(t, tokenRepo.tokens[tokens.RefreshToken].Revoked)
	_, err = service.Refresh(ctx, tokens.RefreshToken)
	require.True(t, errors.Is(err, apperrors.ErrTokenInvalid))
}

func TestRefreshExpiredToken(t *testing.T) {
	service, _, tokenRepo := newAuthService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)
	_, tokens, err := service.Login(ctx, &dto.LoginRequest{Email: "linh@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	tokenRepo.tokens[tokens.RefreshToken].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = service.Refresh(ctx, tokens.RefreshToken)
	require.True(t, errors.Is(err, apperrors.ErrTokenExpired))
}
