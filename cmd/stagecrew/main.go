package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/eventcrew/stagecrew/internal/clock"
	"github.com/eventcrew/stagecrew/internal/migration"
	"github.com/eventcrew/stagecrew/internal/observability"
	"github.com/eventcrew/stagecrew/internal/scheduler"
	"github.com/eventcrew/stagecrew/internal/server"
	"github.com/eventcrew/stagecrew/pkg/db"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func newSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
