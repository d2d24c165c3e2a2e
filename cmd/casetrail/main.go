package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/casetrail/casetrail/internal/config"
	"github.com/casetrail/casetrail/internal/logger"
	"github.com/casetrail/casetrail/internal/migration"
	"github.com/casetrail/casetrail/internal/server"
	"github.com/casetrail/casetrail/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
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
