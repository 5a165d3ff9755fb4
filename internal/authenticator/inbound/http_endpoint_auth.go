package inbound

import (
	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
)

// HTTPEndpoint exposes the account, authenticator and OTP tool handlers.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account.
// @Summary Register account
// @Tags Authenticator, Account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse}
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Username or email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/auth/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}

// Login opens a session and returns its bearer token.
// @Summary Authenticate user
// @Tags Authenticator, Account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse}
// @Failure 401 {object} router.errorResponse "Invalid username or password"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/auth/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   resp.ExpiresAt,
		Username:    resp.Username,
	}, nil
}

// Logout ends the current session.
// @Summary Logout
// @Tags Authenticator, Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=LogoutResponse}
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// PasswordReset sets a new password when username and email match.
// @Summary Reset password
// @Tags Authenticator, Account
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse}
// @Failure 404 {object} router.errorResponse "Username and email do not match"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/auth/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Username:    req.Username,
		Email:       req.Email,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// Profile returns the current user.
// @Summary Current profile
// @Tags Authenticator, Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfileResponse}
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/auth/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}
