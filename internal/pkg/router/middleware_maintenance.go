package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. An entry is either a route pattern, which blocks
// every method, or "METHOD pattern".
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	retryAfter := ""
	if cfg != nil {
		for _, entry := range cfg.GetArray("app.maintenance.endpoints") {
			method, route, found := strings.Cut(strings.TrimSpace(entry), " ")
			if !found {
				blocked[method] = struct{}{}
				continue
			}
			blocked[strings.ToUpper(method)+" "+strings.TrimSpace(route)] = struct{}{}
		}
		if s := cfg.GetInt("app.maintenance.retry_after_seconds"); s > 0 {
			retryAfter = strconv.Itoa(s)
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, all := blocked[route]
			_, one := blocked[r.Method+" "+route]
			if !all && !one {
				next.ServeHTTP(w, r)
				return
			}

			if retryAfter != "" {
				w.Header().Set("Retry-After", retryAfter)
			}
			writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
		})
	}
}
