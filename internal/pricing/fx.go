package pricing

import (
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/pricing/repository"
	"github.com/eventcrew/stagecrew/internal/pricing/service"
)

// Module wires the pricing repository and service.
var Module = fx.Module("pricing",
	fx.Provide(
		repository.New,
		service.New,
	),
)
