package app

import (
	"log/slog"
	"os"

	"github.com/h7ml/denoAuthenticator/internal/activity"
	"github.com/h7ml/denoAuthenticator/internal/authenticator"
)

func (a *App) initModules() {
	if err := authenticator.New(authenticator.Dependency{
		Ctx:         a.ctx,
		DBConn:      a.dbConn,
		Goroutine:   a.goroutine,
		Router:      a.router,
		Idempotency: a.idemp,
		Messaging:   a.messaging,
		Storage:     a.storage,
		Config:      a.config,
		Instrument:  a.ins,
		UID:         a.uid,
		UUID:        a.uuid,
		OID:         a.oid,
		Hash:        a.password,
		HMAC:        a.hmac,
		Sealer:      a.sealer,
		Clock:       a.clock,
		TOTP:        a.totp,
		Parser:      a.parser,
		Provisioner: a.provisioner,
		Validator:   a.validator,
		JWT:         a.jwt,
	}); err != nil {
		slog.Error("failed to init module authenticator", "error", err)
		os.Exit(1)
	}

	if a.config.GetBool("modules.activity.enabled") {
		if err := activity.New(activity.Dependency{
			Ctx:        a.ctx,
			DBConn:     a.dbConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Messaging:  a.messaging,
			Mail:       a.mail,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module activity", "error", err)
			os.Exit(1)
		}
	}
}
