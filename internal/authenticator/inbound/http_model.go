package inbound

import (
	"net/http"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ID        int64     `json:"id,string"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (RegisterResponse) Message() string { return "Registration successful" }
func (RegisterResponse) StatusCode() int { return http.StatusCreated }

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string { return "Logged out" }

type PasswordResetRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Password has been reset. Please log in again."
}

type ProfileResponse struct {
	ID        int64     `json:"id,string"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type EntryCreateRequest struct {
	Method      string `json:"method"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Secret      string `json:"secret"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
	Digits      int    `json:"digits"`
	TimeStep    int    `json:"time_step"`
}

type EntryUpdateRequest struct {
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type EntryVerifyRequest struct {
	Code string `json:"code"`
}

type EntryResponse struct {
	ID               int64     `json:"id,string"`
	Name             string    `json:"name"`
	Issuer           string    `json:"issuer"`
	AccountName      string    `json:"account_name"`
	Digits           int       `json:"digits"`
	TimeStep         int       `json:"time_step"`
	Code             string    `json:"code"`
	RemainingSeconds int       `json:"remaining_seconds"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newEntryResponse(e usecase.EntryOutput) EntryResponse {
	return EntryResponse{
		ID:               e.ID,
		Name:             e.Name,
		Issuer:           e.Issuer,
		AccountName:      e.AccountName,
		Digits:           e.Digits,
		TimeStep:         e.TimeStep,
		Code:             e.Code,
		RemainingSeconds: e.RemainingSeconds,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

type EntryCreatedResponse struct {
	EntryResponse
}

func (EntryCreatedResponse) Message() string { return "Authenticator added" }
func (EntryCreatedResponse) StatusCode() int { return http.StatusCreated }

type EntriesResponse struct {
	Authenticators []EntryResponse `json:"authenticators"`
	// meta
	total int
}

func (r EntriesResponse) Meta() map[string]any {
	return map[string]any{"total": r.total}
}

type EntryDeleteResponse struct{}

func (EntryDeleteResponse) Message() string { return "Authenticator deleted" }

type EntryVerifyResponse struct {
	Valid bool `json:"valid"`
}

type EntryExportResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (EntryExportResponse) Message() string { return "Export is ready" }

type ParseURLRequest struct {
	URL string `json:"url"`
}

type ParseURLResponse struct {
	Secret      string `json:"secret"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type SecretGenerateRequest struct {
	AccountName string `json:"account_name"`
}

type SecretGenerateResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
}
