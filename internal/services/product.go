package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/repos"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

// Prices are stored with two decimal places.
const priceScale = 2

type ProductService interface {
	List(dbc dbctx.Context) ([]*domain.Product, error)
	Get(dbc dbctx.Context, id uint) (*domain.Product, error)
	Create(dbc dbctx.Context, product *domain.Product) (*domain.Product, error)
	Update(dbc dbctx.Context, id uint, product *domain.Product) error
	Delete(dbc dbctx.Context, id uint) error
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo) ProductService {
	return &productService{
		db:          db,
		log:         baseLog.With("service", "ProductService"),
		productRepo: productRepo,
	}
}

func (s *productService) List(dbc dbctx.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *productService) Get(dbc dbctx.Context, id uint) (*domain.Product, error) {
	found, err := s.productRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperr.NotFound("ProductService.Get", "product %d not found", id)
	}
	return found[0], nil
}

func (s *productService) Create(dbc dbctx.Context, product *domain.Product) (*domain.Product, error) {
	const op = "ProductService.Create"
	if err := validateProduct(op, product); err != nil {
		return nil, err
	}
	var created *domain.Product
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		if product.ID != 0 {
			taken, err := s.productRepo.Exists(inner, product.ID)
			if err != nil {
				return fmt.Errorf("check product: %w", err)
			}
			if taken {
				return apperr.Conflict(op, "product %d already exists", product.ID)
			}
		}
		rows, err := s.productRepo.Create(inner, []*domain.Product{product})
		if err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		s.log.Warn("create product failed", "error", err)
		return nil, err
	}
	s.log.Info("product created", "product_id", created.ID, "price", created.Price.String())
	return created, nil
}

// Update replaces every column, so an omitted description clears it.
func (s *productService) Update(dbc dbctx.Context, id uint, product *domain.Product) error {
	const op = "ProductService.Update"
	if product == nil {
		return apperr.Invalid(op, "missing product")
	}
	if product.ID != 0 && product.ID != id {
		return apperr.Invalid(op, "product id %d does not match path id %d", product.ID, id)
	}
	if err := validateProduct(op, product); err != nil {
		return err
	}
	product.ID = id
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		ok, err := s.productRepo.Exists(inner, id)
		if err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		if !ok {
			return apperr.NotFound(op, "product %d not found", id)
		}
		if err := s.productRepo.Update(inner, product); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("update product failed", "error", err, "product_id", id)
	}
	return err
}

func (s *productService) Delete(dbc dbctx.Context, id uint) error {
	n, err := s.productRepo.DeleteByIDs(dbc, []uint{id})
	if err != nil {
		s.log.Warn("delete product failed", "error", err, "product_id", id)
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("ProductService.Delete", "product %d not found", id)
	}
	return nil
}

func validateProduct(op string, p *domain.Product) error {
	if p == nil {
		return apperr.Invalid(op, "missing product")
	}
	p.Normalize()
	if p.Name == "" {
		return apperr.Invalid(op, "product name is required")
	}
	if p.Price.IsNegative() {
		return apperr.Invalid(op, "product price must not be negative")
	}
	p.Price = p.Price.Round(priceScale)
	return nil
}
