package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/tourbase/tourbase/internal/access"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/diagnostics"
	"github.com/tourbase/tourbase/internal/kvstore"
	"github.com/tourbase/tourbase/internal/logger"
	"github.com/tourbase/tourbase/internal/server"
	"github.com/tourbase/tourbase/internal/session"
	"github.com/tourbase/tourbase/internal/subscription"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		kvstore.Module,

		// Functional domains
		session.Module,
		subscription.Module,
		access.Module,
		diagnostics.Module,

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
