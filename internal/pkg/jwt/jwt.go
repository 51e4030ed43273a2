package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	refreshTokenCookieName = "refresh_token"
	refreshTokenCookiePath = "/api/v1/auth"
)

var ErrWrongTokenType = errors.New("unexpected token type")

type Service interface {
	GenerateAccessToken(userID string, email string, staffID *string) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies signature, expiry and type and returns the subject.
	ParseRefreshToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
}

type JWTService struct {
	accessTokenExpirationTime  time.Duration
	refreshTokenExpirationTime time.Duration
	secureCookie               bool
	tokenAuth                  *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds an HS256 token service. Durations use time.ParseDuration syntax.
func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string, secureCookie bool) (Service, error) {
	accessTTL, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpirationTime:  accessTTL,
		refreshTokenExpirationTime: refreshTTL,
		secureCookie:               secureCookie,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, staffID *string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}
	// Users without a staff profile get no staff_id claim.
	if staffID != nil {
		claims["staff_id"] = *staffID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.refreshTokenExpirationTime).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"jti":     uuid.NewString(),
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeRefresh {
		return "", ErrWrongTokenType
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    token,
		Path:     refreshTokenCookiePath,
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     refreshTokenCookieName,
		Value:    "",
		Path:     refreshTokenCookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
