package auth

import (
	"context"
)

// AuthService is the session provider: password sign-in, token refresh and sign-out.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (AccessTokenResponse, error)
}
