package rest

import (
	"CakeshopWebhooks/internal/controller/rest/handlers"
	"CakeshopWebhooks/pkg/health"
	"CakeshopWebhooks/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	PathLiveness  = "/health/live"
	PathReadiness = "/health/ready"
	PathMetrics   = "/metrics"
)

// WebhookRouter exposes the provider webhook plus probes and metrics.
type WebhookRouter struct {
	webhook        *handlers.WebhookHandler
	webhookPath    string
	healthRegistry *health.Registry
}

func NewWebhookRouter(webhook *handlers.WebhookHandler, webhookPath string, healthRegistry *health.Registry) *WebhookRouter {
	return &WebhookRouter{
		webhook:        webhook,
		webhookPath:    webhookPath,
		healthRegistry: healthRegistry,
	}
}

func (r *WebhookRouter) SetUp(engine *gin.Engine) {
	engine.GET(PathLiveness, health.LivenessHandler())
	engine.GET(PathReadiness, health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))
	engine.GET(PathMetrics, gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	engine.POST(r.webhookPath, r.webhook.Webhook)
}
