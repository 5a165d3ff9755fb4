package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
)

type fakeJWT struct{}

func (fakeJWT) Generate(string, int64, string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not used")
}

func (fakeJWT) Verify(token string) (jwt.Claims, error) {
	if token != "good" && token != "revoked" {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	c := jwt.Claims{UserID: 42, Username: "alice"}
	c.ID = token
	return c, nil
}

type fakeSessions struct{}

func (fakeSessions) SessionActive(_ context.Context, id string) (bool, error) {
	return id == "good", nil
}

func newTestRouter(t *testing.T, ready func() bool) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  maintenance:
    endpoints: /api/v1/down
instrument:
  log_mask_fields: password,secret
`))
	if err != nil {
		t.Fatalf("config error = %v", err)
	}

	r := NewRouter(Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        fakeJWT{},
		Sessions:   fakeSessions{},
		Instrument: instrument.NewNoop(),
		Ready:      ready,
	})

	r.GET("/api/v1/me", func(req *Request) (any, error) {
		return map[string]any{"username": jwt.GetAuth(req.Context()).Username}, nil
	})
	r.GET("/api/v1/missing", func(*Request) (any, error) {
		return nil, goerror.NewNotFound("entry not found")
	})
	r.GET("/api/v1/boom", func(*Request) (any, error) {
		panic("boom")
	})
	r.GET("/api/v1/file", func(*Request) (any, error) {
		return &File{Name: "qr.png", ContentType: "image/png", Body: []byte{0x89, 'P', 'N', 'G'}}, nil
	})
	r.GET("/api/v1/down", func(*Request) (any, error) {
		return nil, nil
	})
	r.POST("/api/v1/otp/parse-url", func(req *Request) (any, error) {
		var body struct {
			URL string `json:"url"`
		}
		if err := req.DecodeBody(&body); err != nil {
			return nil, err
		}
		return body, nil
	})

	return r
}

func serve(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		body    string
		status  int
		message string
	}{
		{name: "welcome", method: http.MethodGet, path: "/", status: http.StatusOK, message: "Welcome to Authenticator API"},
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK, message: "service is healthy"},
		{name: "no token", method: http.MethodGet, path: "/api/v1/me", status: http.StatusUnauthorized, message: "authentication required"},
		{name: "bad token", method: http.MethodGet, path: "/api/v1/me", token: "bad", status: http.StatusUnauthorized, message: "invalid or expired token"},
		{name: "revoked session", method: http.MethodGet, path: "/api/v1/me", token: "revoked", status: http.StatusUnauthorized, message: "session has ended"},
		{name: "authenticated", method: http.MethodGet, path: "/api/v1/me", token: "good", status: http.StatusOK, message: "request has been successfully"},
		{name: "goerror", method: http.MethodGet, path: "/api/v1/missing", token: "good", status: http.StatusNotFound, message: "entry not found"},
		{name: "panic", method: http.MethodGet, path: "/api/v1/boom", token: "good", status: http.StatusInternalServerError, message: "Internal server error"},
		{name: "maintenance", method: http.MethodGet, path: "/api/v1/down", token: "good", status: http.StatusServiceUnavailable, message: "service is under maintenance"},
		{name: "public post", method: http.MethodPost, path: "/api/v1/otp/parse-url", body: `{"url":"otpauth://totp/x?secret=JBSWY3DP"}`, status: http.StatusOK, message: "request has been successfully"},
		{name: "unknown field", method: http.MethodPost, path: "/api/v1/otp/parse-url", body: `{"uri":"x"}`, status: http.StatusBadRequest, message: "Invalid request body"},
		{name: "not found", method: http.MethodGet, path: "/nope", status: http.StatusNotFound, message: "endpoint not found"},
		{name: "method not allowed", method: http.MethodDelete, path: "/health", status: http.StatusMethodNotAllowed, message: "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, tt.method, tt.path, tt.token, tt.body)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if got := decode(t, rec)["message"]; got != tt.message {
				t.Fatalf("message = %v, want %q", got, tt.message)
			}
		})
	}
}

func TestRouterAuthenticatedPayload(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := serve(r, http.MethodGet, "/api/v1/me", "good", "")

	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["username"] != "alice" {
		t.Fatalf("data = %v", data)
	}
	if rec.Header().Get(HeaderCorrelationID) == "" {
		t.Fatalf("expected correlation id header")
	}
}

func TestRouterHealthNotReady(t *testing.T) {
	r := newTestRouter(t, func() bool { return false })

	rec := serve(r, http.MethodGet, "/health", "", "")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["status"] != "unavailable" {
		t.Fatalf("data = %v", data)
	}
}

func TestRouterFile(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := serve(r, http.MethodGet, "/api/v1/file", "good", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Body.String() != "\x89PNG" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestRouterCorrelationHeaderKept(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "  abc-123 ")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderCorrelationID); got != "abc-123" {
		t.Fatalf("correlation id = %q", got)
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		remote string
		want   string
	}{
		{name: "true client ip", header: "True-Client-IP", value: "10.0.0.1", remote: "1.1.1.1:80", want: "10.0.0.1"},
		{name: "forwarded first hop", header: "X-Forwarded-For", value: "10.0.0.2, 10.0.0.3", remote: "1.1.1.1:80", want: "10.0.0.2"},
		{name: "garbage header", header: "X-Real-IP", value: "nope", remote: "1.1.1.1:80", want: "1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set(tt.header, tt.value)

			if got := realIP(req); got != tt.want {
				t.Fatalf("realIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanCorrelationID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: " req-1:a_b.c ", want: "req-1:a_b.c"},
		{in: "", want: ""},
		{in: "bad id", want: ""},
		{in: "line\nbreak", want: ""},
		{in: strings.Repeat("a", maxCorrelationIDLen+1), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanCorrelationID(tt.in); got != tt.want {
				t.Fatalf("cleanCorrelationID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMiddlewareMaintenance_MethodScoped(t *testing.T) {
	// Arrange
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  maintenance:
    endpoints: "POST /api/v1/authenticators"
    retry_after_seconds: 120
`))
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	h := middlewareMaintenance(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		method     string
		status     int
		retryAfter string
	}{
		{method: http.MethodPost, status: http.StatusServiceUnavailable, retryAfter: "120"},
		{method: http.MethodGet, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			// Act
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/v1/authenticators", nil))

			// Assert
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.retryAfter {
				t.Fatalf("Retry-After = %q, want %q", got, tt.retryAfter)
			}
		})
	}
}
