package sales

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type OrderDetailRepo interface {
	Create(dbc dbctx.Context, details []*domain.OrderDetail) ([]*domain.OrderDetail, error)
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.OrderDetail, error)
	List(dbc dbctx.Context) ([]*domain.OrderDetail, error)
	ListByOrderID(dbc dbctx.Context, orderID uint) ([]*domain.OrderDetail, error)
	Update(dbc dbctx.Context, detail *domain.OrderDetail) error
	DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error)
}

type orderDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderDetailRepo(db *gorm.DB, baseLog *logger.Logger) OrderDetailRepo {
	return &orderDetailRepo{db: db, log: baseLog.With("repo", "OrderDetailRepo")}
}

func (r *orderDetailRepo) Create(dbc dbctx.Context, details []*domain.OrderDetail) ([]*domain.OrderDetail, error) {
	return createRows(dbc, r.db, details)
}

func (r *orderDetailRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.OrderDetail, error) {
	return getByIDs[domain.OrderDetail](dbc, r.db, ids)
}

func (r *orderDetailRepo) List(dbc dbctx.Context) ([]*domain.OrderDetail, error) {
	return listAll[domain.OrderDetail](dbc, r.db)
}

func (r *orderDetailRepo) ListByOrderID(dbc dbctx.Context, orderID uint) ([]*domain.OrderDetail, error) {
	return listWhere[domain.OrderDetail](dbc, r.db, "order_id", orderID)
}

func (r *orderDetailRepo) Update(dbc dbctx.Context, detail *domain.OrderDetail) error {
	if detail == nil {
		return nil
	}
	return updateColumns[domain.OrderDetail](dbc, r.db, detail.ID, map[string]any{
		"product_id": detail.ProductID,
		"quantity":   detail.Quantity,
	})
}

func (r *orderDetailRepo) DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error) {
	return deleteByIDs[domain.OrderDetail](dbc, r.db, ids)
}
