package inbound

import (
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/activities", end.ActivityList) // need authenticated
}
