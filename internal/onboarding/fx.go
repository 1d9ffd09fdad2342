package onboarding

import (
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/config"
	"github.com/eventcrew/stagecrew/internal/onboarding/domain"
	"github.com/eventcrew/stagecrew/internal/onboarding/service"
	"github.com/eventcrew/stagecrew/internal/onboarding/store"
)

// NewStore picks the wizard state backend: redis when configured,
// otherwise the in-process store.
func NewStore(client *redis.Client, cfg config.Config, clk clock.Clock) domain.Store {
	ttl := time.Duration(cfg.Onboarding.ProgressTTLHours) * time.Hour
	if client != nil {
		return store.NewRedisStore(client, ttl)
	}
	return store.NewMemoryStore(clk, ttl)
}

// Module wires the onboarding store and wizard service.
var Module = fx.Module("onboarding",
	fx.Provide(
		NewStore,
		service.New,
	),
)
