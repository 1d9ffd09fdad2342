package auth

import (
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/auth/repository"
	"github.com/eventcrew/stagecrew/internal/auth/service"
	"github.com/eventcrew/stagecrew/internal/auth/session"
	"github.com/eventcrew/stagecrew/internal/config"
)

// Module wires the auth repositories, service and session manager.
var Module = fx.Module("auth",
	fx.Provide(
		repository.New,
		service.New,
		func(cfg config.Config) *session.Manager {
			return session.NewManager(cfg.AuthCookieSecure)
		},
	),
)
