package matching

import (
	"time"

	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/cache"
	"github.com/eventcrew/stagecrew/internal/config"
	"github.com/eventcrew/stagecrew/internal/matching/client"
	"github.com/eventcrew/stagecrew/internal/matching/domain"
	"github.com/eventcrew/stagecrew/internal/matching/repository"
	"github.com/eventcrew/stagecrew/internal/matching/service"
)

// Module wires the engine client, score cache, inquiry repository and
// display service.
var Module = fx.Module("matching",
	fx.Provide(
		fx.Annotate(client.New, fx.As(new(domain.Engine))),
		repository.New,
		func(cfg config.Config) cache.MatchScoreCache {
			return cache.NewMatchScoreCache(time.Duration(cfg.Matching.ScoreCacheTTL) * time.Second)
		},
		service.New,
	),
)
