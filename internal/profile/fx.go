package profile

import (
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/profile/repository"
	"github.com/eventcrew/stagecrew/internal/profile/service"
)

// Module wires the profile repository and service.
var Module = fx.Module("profile",
	fx.Provide(
		repository.New,
		service.New,
	),
)
