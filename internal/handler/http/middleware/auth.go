package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/staff-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/staff-portal-go/internal/handler/http/response"
	"github.com/cmlabs-hris/staff-portal-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type sessionKey struct{}

// AuthRequired rejects requests without a verified access token and stores
// the resulting auth.Session on the request context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		session, ok := SessionFromClaims(claims)
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
	}
	return http.HandlerFunc(hfn)
}

// SessionFromClaims builds a session from access token claims. The staff_id
// claim reflects the profile at sign-in time and is informational only; staff
// routes resolve the profile per request through StaffMiddleware.
func SessionFromClaims(claims map[string]interface{}) (auth.Session, bool) {
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != jwt.TokenTypeAccess {
		return auth.Session{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.Session{}, false
	}

	session := auth.Session{UserID: userID}
	session.Email, _ = claims["email"].(string)
	if staffID, ok := claims["staff_id"].(string); ok && staffID != "" {
		session.StaffID = &staffID
	}
	return session, true
}

func CurrentSession(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(auth.Session)
	return session, ok
}
