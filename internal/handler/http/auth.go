package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Session(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sessionTrackReq := auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	tokenResponse, err := a.authService.Login(r.Context(), loginReq, sessionTrackReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn))
	response.SuccessWithMessage(w, "Signed in successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshTokenCookieReq, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrRefreshTokenCookieNotFound)
		return
	}
	if refreshTokenCookieReq.Value == "" {
		response.HandleError(w, auth.ErrRefreshTokenCookieEmpty)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshTokenCookieReq.Value); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.ClearRefreshTokenCookie())
	response.SuccessWithMessage(w, "Signed out successfully", nil)
}

// RefreshToken implements AuthHandler. The cookie is preferred; a JSON body
// is accepted for clients that cannot hold cookies.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenReq auth.RefreshTokenRequest

	refreshTokenCookie, err := r.Cookie("refresh_token")
	if err == nil && refreshTokenCookie.Value != "" {
		refreshTokenReq.RefreshToken = refreshTokenCookie.Value
	} else if err := json.NewDecoder(r.Body).Decode(&refreshTokenReq); err != nil {
		slog.Error("Refresh Token decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := refreshTokenReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), refreshTokenReq.RefreshToken)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrRefreshTokenRevoked) {
			slog.Error("Refresh Token service error", "error", err)
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Token refreshed successfully", tokenResponse)
}

// Session implements AuthHandler.
func (a *AuthHandlerImpl) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.CurrentSession(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	response.Success(w, session)
}
