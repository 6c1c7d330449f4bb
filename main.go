package main

import (
	"go.uber.org/zap"

	"github.com/cppla/linkbook/config"
	"github.com/cppla/linkbook/repository"
	"github.com/cppla/linkbook/routes"
	"github.com/cppla/linkbook/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync() //nolint:errcheck

	db := config.InitDatabase(repository.Models()...)

	r := routes.SetupRouter(db)

	utils.Logger.Info("starting server (graceful)",
		zap.String("port", cfg.AppPort),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("orphan_policy", cfg.TreeOrphanPolicy),
	)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
