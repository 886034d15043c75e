package sales

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, orders []*domain.Order) ([]*domain.Order, error)
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.Order, error)
	List(dbc dbctx.Context) ([]*domain.Order, error)
	ListByClientID(dbc dbctx.Context, clientID uint) ([]*domain.Order, error)
	Update(dbc dbctx.Context, order *domain.Order) error
	DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

func (r *orderRepo) Create(dbc dbctx.Context, orders []*domain.Order) ([]*domain.Order, error) {
	return createRows(dbc, r.db, orders)
}

func (r *orderRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.Order, error) {
	return getByIDs[domain.Order](dbc, r.db, ids)
}

func (r *orderRepo) List(dbc dbctx.Context) ([]*domain.Order, error) {
	return listAll[domain.Order](dbc, r.db)
}

func (r *orderRepo) ListByClientID(dbc dbctx.Context, clientID uint) ([]*domain.Order, error) {
	return listWhere[domain.Order](dbc, r.db, "client_id", clientID)
}

func (r *orderRepo) Update(dbc dbctx.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}
	return updateColumns[domain.Order](dbc, r.db, order.ID, map[string]any{
		"client_id":  order.ClientID,
		"order_date": order.OrderDate,
	})
}

func (r *orderRepo) DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error) {
	return deleteByIDs[domain.Order](dbc, r.db, ids)
}

func (r *orderRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	return exists[domain.Order](dbc, r.db, id)
}
