package middleware

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/storehub/pkg/auth"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/response"
)

// Auth requires a valid "Authorization: Bearer <jwt>" header and stores the
// token's identity in the request context (read with auth.FromContext).
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r.Header.Get("Authorization"))
		if !ok {
			response.Unauthorized(w)
			return
		}

		id, err := auth.ValidateToken(token)
		if err != nil {
			logger.WithCtx(r.Context()).Debug("auth: rejected token", "error", err)
			response.Unauthorized(w)
			return
		}

		log := logger.WithCtx(r.Context()).With("user_id", id.UserID, "role", id.Role)
		ctx := logger.InjectLogger(auth.WithIdentity(r.Context(), id), log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
