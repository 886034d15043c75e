package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/domain"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
)

func (s *service) ProductsAbovePrice(ctx context.Context, value decimal.Decimal) ([]domain.Product, error) {
	const op = "reports.ProductsAbovePrice"
	var out []domain.Product
	err := s.view(ctx, "products_above_price", func(t query.Tables) error {
		products, err := t.Products(query.ProductFilter{PriceAbove: &value})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		if len(products) == 0 {
			return apperr.NotFound(op, "no products found with a price above %s", value.String())
		}
		out = products
		return nil
	})
	return out, err
}

// MostExpensiveProduct returns the lowest id among products sharing the top price.
func (s *service) MostExpensiveProduct(ctx context.Context) (domain.Product, error) {
	const op = "reports.MostExpensiveProduct"
	var out domain.Product
	err := s.view(ctx, "most_expensive_product", func(t query.Tables) error {
		products, err := t.Products(query.ProductFilter{})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		query.SortStableDesc(products, func(a, b domain.Product) bool { return a.Price.GreaterThan(b.Price) })
		top, ok := query.First(products)
		if !ok {
			return apperr.NotFound(op, "no products found")
		}
		out = top
		return nil
	})
	return out, err
}

// AveragePrice is the arithmetic mean of every product price. A mean of
// exactly zero is reported the same way as an empty catalog.
func (s *service) AveragePrice(ctx context.Context) (decimal.Decimal, error) {
	const op = "reports.AveragePrice"
	var out decimal.Decimal
	err := s.view(ctx, "average_price", func(t query.Tables) error {
		products, err := t.Products(query.ProductFilter{})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		if len(products) == 0 {
			return apperr.NotFound(op, "no products found")
		}
		prices := query.Map(products, func(p domain.Product) decimal.Decimal { return p.Price })
		avg := decimal.Avg(prices[0], prices[1:]...)
		if avg.IsZero() {
			return apperr.NotFound(op, "no products found")
		}
		out = avg
		return nil
	})
	return out, err
}

func (s *service) ProductsWithoutDescription(ctx context.Context) ([]domain.Product, error) {
	const op = "reports.ProductsWithoutDescription"
	var out []domain.Product
	err := s.view(ctx, "products_without_description", func(t query.Tables) error {
		products, err := t.Products(query.ProductFilter{MissingDescription: true})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		if len(products) == 0 {
			return apperr.NotFound(op, "no products without a description found")
		}
		out = products
		return nil
	})
	return out, err
}
