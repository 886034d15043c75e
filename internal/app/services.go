package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/pkg/logger"
	"github.com/yungbote/sales-backend/internal/services"
)

type Services struct {
	Client  services.ClientService
	Product services.ProductService
	Order   services.OrderService
}

func wireServices(db *gorm.DB, log *logger.Logger, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Client:  services.NewClientService(db, log, r.Client),
		Product: services.NewProductService(db, log, r.Product),
		Order:   services.NewOrderService(db, log, r.Client, r.Product, r.Order, r.OrderDetail),
	}
}
