package main

import (
	"context"

	"github.com/h7ml/denoAuthenticator/internal/app"
)

// @title           Authenticator API
// @version         1.0
// @description     Stores TOTP authenticator entries per account and serves their current codes.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	a := app.New()
	<-a.Start()

	ctx, cancel := context.WithTimeout(context.Background(), a.ShutdownTimeout())
	defer cancel()

	a.Stop(ctx)
}
