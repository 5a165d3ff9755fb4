package router

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
)

// SessionChecker reports whether the session named by a token's jti is still live.
type SessionChecker interface {
	SessionActive(ctx context.Context, id string) (bool, error)
}

func middlewareAuthentication(verifier jwt.JWT, sessions func() SessionChecker, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := matchedRoutePath(r)

			if s, ok := public[r.Method]; ok {
				if _, skip := s[path]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			p := strings.Fields(r.Header.Get("Authorization"))
			if len(p) != 2 || !strings.EqualFold(p[0], "Bearer") {
				writeJSON(w, errorResponse{Message: "authentication required"}, http.StatusUnauthorized)
				return
			}

			if verifier == nil {
				writeJSON(w, errorResponse{Message: "invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(p[1])
			if err != nil {
				writeJSON(w, errorResponse{Message: "invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			if checker := sessions(); checker != nil {
				active, err := checker.SessionActive(r.Context(), claims.ID)
				if err != nil {
					slog.ErrorContext(r.Context(), "failed to check session", "session_id", claims.ID, "error", err)
					writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
					return
				}
				if !active {
					writeJSON(w, errorResponse{Message: "session has ended"}, http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
