package app

import (
	"CakeshopWebhooks/internal/controller/rest"
	"CakeshopWebhooks/pkg/logger"
	"CakeshopWebhooks/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func NewGinEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(
		logger.CorrelationMiddleware(),
		metrics.GinMiddleware(rest.PathLiveness, rest.PathReadiness, rest.PathMetrics),
		logger.RequestLogger(),
		gin.Recovery(),
	)
	return engine
}
