package health_check_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confera/config"
	"github.com/confera/pkg/commons"
)

type healthCheckApi struct {
	cfg    *config.AppConfig
	logger commons.Logger
}

func New(cfg *config.AppConfig, logger commons.Logger) *healthCheckApi {
	return &healthCheckApi{cfg: cfg, logger: logger}
}

func (api *healthCheckApi) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": api.cfg.Name, "version": api.cfg.Version})
}

func (api *healthCheckApi) Readiness(c *gin.Context) {
	// token issuance needs nothing beyond validated configuration, which
	// the process refuses to start without
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
