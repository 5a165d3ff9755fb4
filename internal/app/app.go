package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"

	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goroutine"
	"github.com/h7ml/denoAuthenticator/internal/pkg/hash"
	"github.com/h7ml/denoAuthenticator/internal/pkg/idempotency"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
	"github.com/h7ml/denoAuthenticator/internal/pkg/mail"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
	"github.com/h7ml/denoAuthenticator/internal/pkg/seal"
	"github.com/h7ml/denoAuthenticator/internal/pkg/storage"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	ready  *atomic.Bool

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine   *goroutine.Manager
	validator   validator.Validator
	clock       clock.Clocker
	hmac        hash.Hash
	password    hash.Hash
	sealer      seal.Sealer
	uid         uid.NumberID
	oid         uid.StringID
	uuid        uid.StringID
	totp        *otp.TOTP
	parser      otp.Parser
	provisioner *otp.Provisioner
	jwt         jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
		ready:  atomic.NewBool(false),
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initOTP()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
