package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/sales-backend/internal/http/handlers"
	httpMW "github.com/yungbote/sales-backend/internal/http/middleware"
	"github.com/yungbote/sales-backend/internal/observability"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

const (
	healthRoute  = "/healthcheck"
	metricsRoute = "/metrics"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	HealthHandler  *httpH.HealthHandler
	ClientHandler  *httpH.ClientHandler
	ProductHandler *httpH.ProductHandler
	OrderHandler   *httpH.OrderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, healthRoute, metricsRoute))
	r.Use(httpMW.Metrics(cfg.Metrics, metricsRoute))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET(healthRoute, cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(metricsRoute, gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Clients
		if h := cfg.ClientHandler; h != nil {
			api.GET("/client", h.List)
			api.POST("/client", h.Create)
			api.GET("/client/:id", h.Get)
			api.PUT("/client/:id", h.Update)
			api.DELETE("/client/:id", h.Delete)
			api.GET("/client/:id/orders", h.Orders)

			api.GET("/client/search/:name", h.SearchByName)
			api.GET("/client/mostOrders", h.MostOrders)
			api.GET("/client/purchasedProduct/:productId", h.PurchasedProduct)
			api.GET("/client/readonly/clients-with-orders", h.ClientsWithOrders)
			api.GET("/client/totalProductsByClient", h.TotalProductsByClient)
			api.GET("/client/sales/by-client", h.SalesByClient)
		}

		// Orders and line items
		if h := cfg.OrderHandler; h != nil {
			api.GET("/order", h.List)
			api.POST("/order", h.Create)
			api.GET("/order/:id", h.Get)
			api.PUT("/order/:id", h.Update)
			api.DELETE("/order/:id", h.Delete)
			api.GET("/order/:id/details", h.ListDetails)
			api.POST("/order/:id/details", h.AddDetail)

			api.GET("/orderDetail/:id", h.GetDetail)
			api.PUT("/orderDetail/:id", h.UpdateDetail)
			api.DELETE("/orderDetail/:id", h.DeleteDetail)

			api.GET("/order/search/after/:date", h.AfterDate)
			api.GET("/order/details/:id", h.Details)
			api.GET("/order/totalQuantity/:id", h.TotalQuantity)
			api.GET("/order/allDetails", h.AllDetails)
			api.GET("/order/productsByClient/:clientId", h.ProductsByClient)
			api.GET("/order/:id/details-with-products", h.DetailsWithProducts)
		}

		// Products
		if h := cfg.ProductHandler; h != nil {
			api.GET("/product", h.List)
			api.POST("/product", h.Create)
			api.GET("/product/:id", h.Get)
			api.PUT("/product/:id", h.Update)
			api.DELETE("/product/:id", h.Delete)

			api.GET("/product/search/price/:value", h.AbovePrice)
			api.GET("/product/mostExpensive", h.MostExpensive)
			api.GET("/product/averagePrice", h.AveragePrice)
			api.GET("/product/noDescription", h.NoDescription)
		}
	}

	return r
}
