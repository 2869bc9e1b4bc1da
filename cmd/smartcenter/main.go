package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/smartcenter/internal/clock"
	"github.com/smallbiznis/smartcenter/internal/config"
	"github.com/smallbiznis/smartcenter/internal/logger"
	"github.com/smallbiznis/smartcenter/internal/migration"
	"github.com/smallbiznis/smartcenter/internal/server"
	"github.com/smallbiznis/smartcenter/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface; pulls in the domain modules.
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
