package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/user"
	"github.com/loomhr/leave-backend-go/internal/handler/http/response"
)

func roleFromClaims(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// RequireReviewer requires supervisor, admin or superadmin role
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || !role.CanReview() {
			response.HandleError(w, user.ErrReviewerRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires admin or superadmin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || !role.IsAdmin() {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
