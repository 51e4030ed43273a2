package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testPassword   = "password123"
	testMaxLogins  = 3
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

type fakeStaffRepo struct {
	byUser map[string]staff.Staff
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.Staff, error) {
	for _, s := range f.byUser {
		if s.ID == id {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (f *fakeStaffRepo) GetByUserID(ctx context.Context, userID string) (staff.Staff, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return staff.Staff{}, staff.ErrStaffNotFound
	}
	return s, nil
}

type fakeTokenRepo struct {
	issued  map[string]bool // token -> revoked
	saveErr error
}

func (f *fakeTokenRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.issued[token] = false
	return nil
}

func (f *fakeTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	revoked, ok := f.issued[token]
	if !ok {
		return true, nil
	}
	return revoked, nil
}

func (f *fakeTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	if _, ok := f.issued[token]; ok {
		f.issued[token] = true
	}
	return nil
}

func (f *fakeTokenRepo) DeleteRefreshTokensBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis: connection refused")
}
func (brokenLimiter) Fail(ctx context.Context, key string) error {
	return errors.New("redis: connection refused")
}
func (brokenLimiter) Reset(ctx context.Context, key string) error {
	return errors.New("redis: connection refused")
}
func (brokenLimiter) Healthy(ctx context.Context) bool { return false }

type authFixture struct {
	svc    auth.AuthService
	jwt    jwt.Service
	tokens *fakeTokenRepo
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	return newAuthFixtureWithLimiter(t, ratelimit.NewMemoryLimiter(testMaxLogins, 15*time.Minute))
}

func newAuthFixtureWithLimiter(t *testing.T, limiter ratelimit.Limiter) authFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false)
	require.NoError(t, err)

	users := &fakeUserRepo{users: []user.User{
		{ID: "user-1", Email: "staff@example.com", PasswordHash: &hashed},
		{ID: "user-2", Email: "admin@example.com", PasswordHash: &hashed},
		{ID: "user-3", Email: "nopass@example.com"},
	}}
	staffRepo := &fakeStaffRepo{byUser: map[string]staff.Staff{
		"user-1": {ID: "staff-1", UserID: "user-1"},
	}}
	tokens := &fakeTokenRepo{issued: make(map[string]bool)}

	return authFixture{
		svc:    NewAuthService(passthroughTx{}, users, staffRepo, tokens, jwtService, limiter, metrics.New()),
		jwt:    jwtService,
		tokens: tokens,
	}
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, "staff-1", *resp.StaffID)
	assert.Contains(t, f.tokens.issued, resp.RefreshToken)

	token, err := f.jwt.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	staffID, ok := token.Get("staff_id")
	require.True(t, ok)
	assert.Equal(t, "staff-1", staffID)
}

func TestLogin_UserWithoutStaffProfile(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "admin@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp.StaffID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)

	cases := []auth.LoginRequest{
		{Email: "staff@example.com", Password: "wrong-password"},
		{Email: "unknown@example.com", Password: testPassword},
		{Email: "nopass@example.com", Password: testPassword},
	}
	for _, c := range cases {
		_, err := f.svc.Login(context.Background(), c, auth.SessionTrackingRequest{})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, c.Email)
	}
	assert.Empty(t, f.tokens.issued)
}

func TestLogin_BlocksAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < testMaxLogins; i++ {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrTooManyLoginAttempts)
	assert.Empty(t, f.tokens.issued)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}

func TestLogin_AttemptsKeyedByNormalizedEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < testMaxLogins; i++ {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "Staff@Example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
		require.Error(t, err)
	}

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrTooManyLoginAttempts)
}

func TestLogin_SuccessResetsFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < testMaxLogins-1; i++ {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}
	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	for i := 0; i < testMaxLogins-1; i++ {
		_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}
	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
}

func TestLogin_LimiterOutageDoesNotBlock(t *testing.T) {
	f := newAuthFixtureWithLimiter(t, brokenLimiter{})
	ctx := context.Background()

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: "wrong-password"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin_ValidationError(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"}, auth.SessionTrackingRequest{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestLogin_TokenPersistenceFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.saveErr = errors.New("db down")

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, f.tokens.saveErr)
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	login, err := f.svc.Login(ctx, auth.LoginRequest{Email: "staff@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, login.RefreshToken))

	_, err = f.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	assert.ErrorIs(t, f.svc.Logout(ctx, ""), auth.ErrRefreshTokenCookieEmpty)
}
