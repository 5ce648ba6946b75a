// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/confera/config"
	"github.com/confera/pkg/commons"
	"github.com/confera/pkg/region"
	"github.com/confera/pkg/token"
	meetRouters "github.com/confera/router"
)

func main() {
	vConfig, err := config.InitConfig()
	if err != nil {
		log.Fatalf("unable to initialize config: %v", err)
	}
	cfg, err := config.GetApplicationConfig(vConfig)
	if err != nil {
		log.Fatalf("invalid application config: %v", err)
	}

	logger := commons.NewApplicationLogger(cfg.Name, cfg.LogLevel, cfg.LogFile)

	issuer, err := token.NewIssuer(cfg.LiveKitAPIKey, cfg.LiveKitAPISecret)
	if err != nil {
		logger.Fatalf("unable to construct token issuer: %v", err)
	}
	resolver := region.NewResolver(cfg.RegionOverrides())

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	meetRouters.HealthCheckRoutes(cfg, engine, logger)
	meetRouters.ConnectionApiRoute(cfg, engine, logger, issuer, resolver)
	meetRouters.AgentApiRoute(cfg, engine, logger)
	meetRouters.RecordingApiRoute(cfg, engine, logger)

	address := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Infof("%s %s listening on %s", cfg.Name, cfg.Version, address)
	if err := engine.Run(address); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
