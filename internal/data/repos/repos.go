package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/repos/sales"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type ClientRepo = sales.ClientRepo
type ProductRepo = sales.ProductRepo
type OrderRepo = sales.OrderRepo
type OrderDetailRepo = sales.OrderDetailRepo

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return sales.NewClientRepo(db, baseLog)
}
func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return sales.NewProductRepo(db, baseLog)
}
func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return sales.NewOrderRepo(db, baseLog)
}
func NewOrderDetailRepo(db *gorm.DB, baseLog *logger.Logger) OrderDetailRepo {
	return sales.NewOrderDetailRepo(db, baseLog)
}
