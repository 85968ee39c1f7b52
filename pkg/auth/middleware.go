package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/bountylab/reconciler/pkg/utils"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

var jwtService JWTServiceInterface = &JWTService{}

// AuthMiddleware guards the marketplace-facing API. The webhook endpoint is
// intentionally outside it: the processor authenticates with a body signature.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
