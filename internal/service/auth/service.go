package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/staff"
	"github.com/cmlabs-hris/staff-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/staff-portal-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx         postgresql.Transactor
	userRepo   user.UserRepository
	staffRepo  staff.StaffRepository
	tokenRepo  auth.TokenRepository
	jwtService jwt.Service
	limiter    ratelimit.Limiter
	metrics    *metrics.Metrics
}

func NewAuthService(tx postgresql.Transactor, userRepository user.UserRepository, staffRepository staff.StaffRepository, tokenRepository auth.TokenRepository, jwtService jwt.Service, limiter ratelimit.Limiter, m *metrics.Metrics) auth.AuthService {
	return &AuthServiceImpl{
		tx:         tx,
		userRepo:   userRepository,
		staffRepo:  staffRepository,
		tokenRepo:  tokenRepository,
		jwtService: jwtService,
		limiter:    limiter,
		metrics:    m,
	}
}

// Login implements auth.AuthService. Failed attempts are counted per email;
// once the limiter blocks an email, Login returns ErrTooManyLoginAttempts
// without checking the password. A limiter outage does not block sign-in.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	attemptKey := strings.ToLower(strings.TrimSpace(loginReq.Email))
	allowed, retryAfter, err := a.limiter.Allow(ctx, attemptKey)
	if err != nil {
		slog.Warn("login limiter unavailable", "error", err)
	} else if !allowed {
		a.metrics.LoginAttempt(metrics.LoginBlocked)
		slog.Warn("login blocked", "email", attemptKey, "retry_after", retryAfter.String())
		return auth.TokenResponse{}, auth.ErrTooManyLoginAttempts
	}

	userData, err := a.checkCredentials(ctx, loginReq)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			a.metrics.LoginAttempt(metrics.LoginFailure)
			if ferr := a.limiter.Fail(ctx, attemptKey); ferr != nil {
				slog.Warn("failed to record login attempt", "error", ferr)
			}
		}
		return auth.TokenResponse{}, err
	}

	staffID, err := a.lookupStaffID(ctx, userData.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	tokenResponse := auth.TokenResponse{StaffID: staffID}
	err = a.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(userData.ID, userData.Email, staffID)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.tokenRepo.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, sessionTrackReq); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := a.limiter.Reset(ctx, attemptKey); err != nil {
		slog.Warn("failed to reset login attempts", "error", err)
	}
	a.metrics.LoginAttempt(metrics.LoginSuccess)

	slog.Info("user signed in", "user_id", userData.ID, "has_staff", staffID != nil)
	return tokenResponse, nil
}

func (a *AuthServiceImpl) checkCredentials(ctx context.Context, loginReq auth.LoginRequest) (user.User, error) {
	userData, err := a.userRepo.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, auth.ErrInvalidCredentials
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.HasPassword() {
		return user.User{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return user.User{}, auth.ErrInvalidCredentials
	}
	return userData, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.AccessTokenResponse, error) {
	userID, err := a.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.tokenRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	staffID, err := a.lookupStaffID(ctx, userData.ID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(userData.ID, userData.Email, staffID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService. Revoking an unknown token is not an error.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrRefreshTokenCookieEmpty
	}
	if err := a.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// lookupStaffID returns nil when the user has no staff profile.
func (a *AuthServiceImpl) lookupStaffID(ctx context.Context, userID string) (*string, error) {
	staffData, err := a.staffRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get staff profile: %w", err)
	}
	return &staffData.ID, nil
}
