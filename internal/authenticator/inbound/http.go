package inbound

import (
	"context"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Logout(ctx context.Context) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)

	EntryCreate(ctx context.Context, in usecase.EntryCreateInput) (*usecase.EntryOutput, error)
	EntryList(ctx context.Context) ([]usecase.EntryOutput, error)
	EntryDetail(ctx context.Context, in usecase.EntryDetailInput) (*usecase.EntryOutput, error)
	EntryUpdate(ctx context.Context, in usecase.EntryUpdateInput) (*usecase.EntryOutput, error)
	EntryDelete(ctx context.Context, in usecase.EntryDeleteInput) error
	EntryVerify(ctx context.Context, in usecase.EntryVerifyInput) (*usecase.EntryVerifyOutput, error)
	EntryQRCode(ctx context.Context, in usecase.EntryQRCodeInput) (*usecase.EntryQRCodeOutput, error)
	EntryExport(ctx context.Context) (*usecase.EntryExportOutput, error)

	ParseURL(ctx context.Context, in usecase.ParseURLInput) (*otp.ProvisioningRecord, error)
	SecretGenerate(ctx context.Context, in usecase.SecretGenerateInput) (*usecase.SecretGenerateOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Account
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/logout", end.Logout) // need authenticated
	r.POST("/api/v1/auth/password/reset", end.PasswordReset)
	r.GET("/api/v1/auth/profile", end.Profile) // need authenticated

	// Authenticator entries (need authenticated)
	r.GET("/api/v1/authenticators", end.EntryList)
	r.POST("/api/v1/authenticators", end.EntryCreate)
	r.GET("/api/v1/authenticators/:id", end.EntryDetail)
	r.PUT("/api/v1/authenticators/:id", end.EntryUpdate)
	r.DELETE("/api/v1/authenticators/:id", end.EntryDelete)
	r.POST("/api/v1/authenticators/:id/verify", end.EntryVerify)
	r.GET("/api/v1/authenticators/:id/qrcode", end.EntryQRCode)
	r.POST("/api/v1/authenticators-export", end.EntryExport)

	// Stateless OTP tools
	r.POST("/api/v1/otp/parse-url", end.ParseURL)
	r.POST("/api/v1/otp/secret", end.SecretGenerate)
}
