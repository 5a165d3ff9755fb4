package inbound

import (
	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
)

// ParseURL decodes an otpauth:// or phonefactor:// provisioning URL.
// @Summary Parse provisioning URL
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body ParseURLRequest true "URL from a scanned QR code"
// @Success 200 {object} router.successResponse{data=ParseURLResponse}
// @Failure 422 {object} router.errorResponse "Unsupported URL format"
// @Router /api/v1/otp/parse-url [post]
func (h *HTTPEndpoint) ParseURL(r *router.Request) (any, error) {
	var req ParseURLRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ParseURL(r.Context(), usecase.ParseURLInput{URL: req.URL})
	if err != nil {
		return nil, err
	}

	return ParseURLResponse{
		Secret:      resp.Secret,
		Issuer:      resp.Issuer,
		AccountName: resp.AccountName,
	}, nil
}

// SecretGenerate returns a random secret with its provisioning URI. The body
// is optional.
// @Summary Generate secret
// @Tags OTP
// @Accept json
// @Produce json
// @Param request body SecretGenerateRequest false "Account label"
// @Success 200 {object} router.successResponse{data=SecretGenerateResponse}
// @Router /api/v1/otp/secret [post]
func (h *HTTPEndpoint) SecretGenerate(r *router.Request) (any, error) {
	var req SecretGenerateRequest
	if r.ContentLength != 0 {
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}
	}

	resp, err := h.uc.SecretGenerate(r.Context(), usecase.SecretGenerateInput{AccountName: req.AccountName})
	if err != nil {
		return nil, err
	}

	return SecretGenerateResponse{Secret: resp.Secret, URI: resp.URI}, nil
}
