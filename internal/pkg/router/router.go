// Package router is the HTTP layer shared by all modules: httprouter routing,
// the JSON envelope, and the standard middleware chain.
package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
)

// Handler returns a payload for the JSON envelope, a *File, or an error.
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	Config     config.Config
	UUID       uid.StringID
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	// Sessions, when set, rejects tokens whose session was revoked.
	Sessions SessionChecker
	// Ready reports whether /health should answer 200. Nil means always ready.
	Ready func() bool
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr       *httprouter.Router
	mws      []Middleware
	sessions SessionChecker
}

// publicEndpoints skip bearer authentication, keyed by method and route pattern.
var publicEndpoints = map[string]map[string]struct{}{
	http.MethodGet: {
		"/":       {},
		"/health": {},
	},
	http.MethodPost: {
		"/api/v1/auth/register":       {},
		"/api/v1/auth/login":          {},
		"/api/v1/auth/password/reset": {},
		"/api/v1/otp/parse-url":       {},
		"/api/v1/otp/secret":          {},
	},
}

// NewRouter builds the application router with the standard middleware.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	ro := &Router{hr: hr, sessions: cfg.Sessions}
	ro.mws = []Middleware{
		middlewareRecoverer,
		middlewareIP,
		middlewareCorrelationID(cfg.UUID),
		middlewareObservability(cfg.Config, ins),
		middlewareMaintenance(cfg.Config),
		middlewareAuthentication(cfg.JWT, ro.sessionChecker, publicEndpoints),
	}

	ro.GET("/", func(*Request) (any, error) {
		return welcome{}, nil
	})
	ro.GET("/health", func(*Request) (any, error) {
		return health{ready: cfg.Ready == nil || cfg.Ready()}, nil
	})

	return ro
}

// SetSessionChecker installs the session store consulted for bearer tokens.
// It must be called before the router starts serving.
func (r *Router) SetSessionChecker(s SessionChecker) {
	r.sessions = s
}

func (r *Router) sessionChecker() SessionChecker {
	return r.sessions
}

type welcome struct{}

func (welcome) Message() string { return "Welcome to Authenticator API" }

type health struct {
	ready bool
}

func (h health) Message() string {
	if h.ready {
		return "service is healthy"
	}
	return "service is starting"
}

func (h health) StatusCode() int {
	if h.ready {
		return http.StatusOK
	}
	return http.StatusServiceUnavailable
}

func (h health) MarshalJSON() ([]byte, error) {
	if h.ready {
		return []byte(`{"status":"ok"}`), nil
	}
	return []byte(`{"status":"unavailable"}`), nil
}

// GET registers a GET endpoint.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// POST registers a POST endpoint.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

// PUT registers a PUT endpoint.
func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPut, path, h, mws...)
}

// DELETE registers a DELETE endpoint.
func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodDelete, path, h, mws...)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	final := http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(&Request{Request: re})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			writeError(re.Context(), w, err)
			return
		}
		writeSuccess(re.Context(), w, resp)
	})

	chain := make([]Middleware, 0, len(r.mws)+len(mws))
	chain = append(chain, r.mws...)
	chain = append(chain, mws...)

	r.hr.Handler(method, path, Chain(final, chain...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}
