package sales

import (
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*domain.Product) ([]*domain.Product, error)
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.Product, error)
	List(dbc dbctx.Context) ([]*domain.Product, error)
	Update(dbc dbctx.Context, product *domain.Product) error
	DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) Create(dbc dbctx.Context, products []*domain.Product) ([]*domain.Product, error) {
	return createRows(dbc, r.db, products)
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*domain.Product, error) {
	return getByIDs[domain.Product](dbc, r.db, ids)
}

func (r *productRepo) List(dbc dbctx.Context) ([]*domain.Product, error) {
	return listAll[domain.Product](dbc, r.db)
}

// Update writes every column, so a nil description clears the stored one.
func (r *productRepo) Update(dbc dbctx.Context, product *domain.Product) error {
	if product == nil {
		return nil
	}
	return updateColumns[domain.Product](dbc, r.db, product.ID, map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
	})
}

func (r *productRepo) DeleteByIDs(dbc dbctx.Context, ids []uint) (int64, error) {
	return deleteByIDs[domain.Product](dbc, r.db, ids)
}

func (r *productRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	return exists[domain.Product](dbc, r.db, id)
}
