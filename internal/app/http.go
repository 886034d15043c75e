package app

import (
	httpx "github.com/yungbote/sales-backend/internal/http"
	httpH "github.com/yungbote/sales-backend/internal/http/handlers"
	"github.com/yungbote/sales-backend/internal/observability"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
	"github.com/yungbote/sales-backend/internal/reports"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Client  *httpH.ClientHandler
	Product *httpH.ProductHandler
	Order   *httpH.OrderHandler
}

func wireHandlers(log *logger.Logger, s Services, r reports.Service) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Client:  httpH.NewClientHandler(s.Client, s.Order, r),
		Product: httpH.NewProductHandler(s.Product, r),
		Order:   httpH.NewOrderHandler(s.Order, r),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers) *httpx.Server {
	log.Info("Wiring router...")
	return httpx.NewServer(httpx.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    otelServiceName(cfg),
		CORSOrigins:    cfg.CORSOrigins,
		HealthHandler:  h.Health,
		ClientHandler:  h.Client,
		ProductHandler: h.Product,
		OrderHandler:   h.Order,
	})
}

// otelServiceName names the otelgin spans; empty leaves the middleware out.
func otelServiceName(cfg Config) string {
	if !cfg.Otel.Enabled {
		return ""
	}
	return cfg.Otel.ServiceName
}
