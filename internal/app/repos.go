package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/repos"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type Repos struct {
	Client      repos.ClientRepo
	Product     repos.ProductRepo
	Order       repos.OrderRepo
	OrderDetail repos.OrderDetailRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Client:      repos.NewClientRepo(db, log),
		Product:     repos.NewProductRepo(db, log),
		Order:       repos.NewOrderRepo(db, log),
		OrderDetail: repos.NewOrderDetailRepo(db, log),
	}
}
