package team

import (
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/team/repository"
	"github.com/eventcrew/stagecrew/internal/team/service"
)

// Module wires the team repository and service.
var Module = fx.Module("team",
	fx.Provide(
		repository.New,
		service.New,
	),
)
