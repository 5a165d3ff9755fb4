package inbound

import (
	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
)

const headerIdempotencyKey = "Idempotency-Key"

// EntryList returns every authenticator of the current user with live codes.
// @Summary List authenticators
// @Tags Authenticator
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=EntriesResponse}
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/authenticators [get]
func (h *HTTPEndpoint) EntryList(r *router.Request) (any, error) {
	resp, err := h.uc.EntryList(r.Context())
	if err != nil {
		return nil, err
	}

	items := make([]EntryResponse, 0, len(resp))
	for _, e := range resp {
		items = append(items, newEntryResponse(e))
	}

	return EntriesResponse{Authenticators: items, total: len(items)}, nil
}

// EntryCreate adds an authenticator from a provisioning URL or a manual secret.
// @Summary Add authenticator
// @Tags Authenticator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Deduplicates retries"
// @Param request body EntryCreateRequest true "Entry payload"
// @Success 201 {object} router.successResponse{data=EntryCreatedResponse}
// @Failure 409 {object} router.errorResponse "Request with the same key in progress"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/authenticators [post]
func (h *HTTPEndpoint) EntryCreate(r *router.Request) (any, error) {
	var req EntryCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EntryCreate(r.Context(), usecase.EntryCreateInput{
		Method:         req.Method,
		Name:           req.Name,
		URL:            req.URL,
		Secret:         req.Secret,
		Issuer:         req.Issuer,
		AccountName:    req.AccountName,
		Digits:         req.Digits,
		TimeStep:       req.TimeStep,
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return EntryCreatedResponse{EntryResponse: newEntryResponse(*resp)}, nil
}

// EntryDetail returns one authenticator with its code.
// @Summary Authenticator detail
// @Tags Authenticator
// @Produce json
// @Security BearerAuth
// @Param id path string true "Authenticator ID"
// @Success 200 {object} router.successResponse{data=EntryResponse}
// @Failure 404 {object} router.errorResponse "Authenticator not found"
// @Router /api/v1/authenticators/{id} [get]
func (h *HTTPEndpoint) EntryDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.EntryDetail(r.Context(), usecase.EntryDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return newEntryResponse(*resp), nil
}

// EntryUpdate renames an authenticator.
// @Summary Update authenticator
// @Tags Authenticator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Authenticator ID"
// @Param request body EntryUpdateRequest true "Editable fields"
// @Success 200 {object} router.successResponse{data=EntryResponse}
// @Failure 404 {object} router.errorResponse "Authenticator not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/authenticators/{id} [put]
func (h *HTTPEndpoint) EntryUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req EntryUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EntryUpdate(r.Context(), usecase.EntryUpdateInput{
		ID:          id,
		Name:        req.Name,
		Issuer:      req.Issuer,
		AccountName: req.AccountName,
	})
	if err != nil {
		return nil, err
	}

	return newEntryResponse(*resp), nil
}

// EntryDelete removes an authenticator.
// @Summary Delete authenticator
// @Tags Authenticator
// @Produce json
// @Security BearerAuth
// @Param id path string true "Authenticator ID"
// @Success 200 {object} router.successResponse{data=EntryDeleteResponse}
// @Failure 404 {object} router.errorResponse "Authenticator not found"
// @Router /api/v1/authenticators/{id} [delete]
func (h *HTTPEndpoint) EntryDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.EntryDelete(r.Context(), usecase.EntryDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return EntryDeleteResponse{}, nil
}

// EntryVerify checks a code against an authenticator.
// @Summary Verify code
// @Tags Authenticator
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Authenticator ID"
// @Param request body EntryVerifyRequest true "Code to check"
// @Success 200 {object} router.successResponse{data=EntryVerifyResponse}
// @Failure 404 {object} router.errorResponse "Authenticator not found"
// @Router /api/v1/authenticators/{id}/verify [post]
func (h *HTTPEndpoint) EntryVerify(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req EntryVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EntryVerify(r.Context(), usecase.EntryVerifyInput{ID: id, Code: req.Code})
	if err != nil {
		return nil, err
	}

	return EntryVerifyResponse{Valid: resp.Valid}, nil
}

// EntryQRCode renders the authenticator's otpauth URI as a PNG.
// @Summary Authenticator QR code
// @Tags Authenticator
// @Produce png
// @Security BearerAuth
// @Param id path string true "Authenticator ID"
// @Param size query int false "Image size in pixels (128-1024)"
// @Success 200 {file} binary
// @Failure 404 {object} router.errorResponse "Authenticator not found"
// @Router /api/v1/authenticators/{id}/qrcode [get]
func (h *HTTPEndpoint) EntryQRCode(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.EntryQRCode(r.Context(), usecase.EntryQRCodeInput{ID: id, Size: int(size)})
	if err != nil {
		return nil, err
	}

	return &router.File{Name: resp.Filename, ContentType: "image/png", Body: resp.PNG}, nil
}

// EntryExport uploads a JSON backup and returns a download link.
// @Summary Export authenticators
// @Tags Authenticator
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=EntryExportResponse}
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/authenticators-export [post]
func (h *HTTPEndpoint) EntryExport(r *router.Request) (any, error) {
	resp, err := h.uc.EntryExport(r.Context())
	if err != nil {
		return nil, err
	}

	return EntryExportResponse{
		URL:       resp.URL,
		Key:       resp.Key,
		Count:     resp.Count,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}
