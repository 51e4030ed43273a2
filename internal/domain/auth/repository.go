package auth

import (
	"context"
	"time"
)

// TokenRepository persists refresh tokens as hashes so they can be revoked.
type TokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	// DeleteRefreshTokensBefore removes tokens that expired or were revoked before cutoff.
	DeleteRefreshTokensBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
