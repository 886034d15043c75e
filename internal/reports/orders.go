package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/domain"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
)

// OrdersAfterDate is exclusive: an order dated exactly at date is left out.
func (s *service) OrdersAfterDate(ctx context.Context, date time.Time) ([]domain.Order, error) {
	const op = "reports.OrdersAfterDate"
	var out []domain.Order
	err := s.view(ctx, "orders_after_date", func(t query.Tables) error {
		orders, err := t.Orders(query.OrderFilter{After: &date})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		if len(orders) == 0 {
			return apperr.NotFound(op, "no orders found after %s", date.UTC().Format(time.DateOnly))
		}
		out = orders
		return nil
	})
	return out, err
}

func (s *service) OrderDetailsFor(ctx context.Context, orderID uint) ([]ProductQuantity, error) {
	const op = "reports.OrderDetailsFor"
	var out []ProductQuantity
	err := s.view(ctx, "order_details_for", func(t query.Tables) error {
		details, err := t.OrderDetails(query.DetailFilter{OrderIDs: []uint{orderID}})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		if len(details) == 0 {
			return apperr.NotFound(op, "no details found for order %d", orderID)
		}
		lines, err := productQuantities(t, details)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		out = lines
		return nil
	})
	return out, err
}

// TotalQuantityForOrder treats a zero sum as absent, whether the order has no
// lines or does not exist.
func (s *service) TotalQuantityForOrder(ctx context.Context, orderID uint) (int, error) {
	const op = "reports.TotalQuantityForOrder"
	var out int
	err := s.view(ctx, "total_quantity_for_order", func(t query.Tables) error {
		details, err := t.OrderDetails(query.DetailFilter{OrderIDs: []uint{orderID}})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		total := 0
		for _, d := range details {
			total += d.Quantity
		}
		if total == 0 {
			return apperr.NotFound(op, "no products found for order %d", orderID)
		}
		out = total
		return nil
	})
	return out, err
}

func (s *service) AllOrderDetailsWithProduct(ctx context.Context) ([]OrderLine, error) {
	const op = "reports.AllOrderDetailsWithProduct"
	var out []OrderLine
	err := s.view(ctx, "all_order_details_with_product", func(t query.Tables) error {
		details, err := t.OrderDetails(query.DetailFilter{})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		if len(details) == 0 {
			return apperr.NotFound(op, "no order details found")
		}
		products, err := t.Products(query.ProductFilter{IDs: productIDs(details)})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		names := productNames(products)
		out = query.Map(details, func(d domain.OrderDetail) OrderLine {
			return OrderLine{OrderID: d.OrderID, ProductName: names[d.ProductID], Quantity: d.Quantity}
		})
		return nil
	})
	return out, err
}

// ProductsSoldToClient lists one entry per order line across the client's
// orders; quantities are not merged per product.
func (s *service) ProductsSoldToClient(ctx context.Context, clientID uint) ([]ProductQuantity, error) {
	const op = "reports.ProductsSoldToClient"
	var out []ProductQuantity
	err := s.view(ctx, "products_sold_to_client", func(t query.Tables) error {
		orders, err := t.Orders(query.OrderFilter{ClientIDs: []uint{clientID}})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		details, err := t.OrderDetails(query.DetailFilter{OrderIDs: orderIDs(orders)})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		if len(details) == 0 {
			return apperr.NotFound(op, "no products sold to client %d", clientID)
		}
		lines, err := productQuantities(t, details)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		out = lines
		return nil
	})
	return out, err
}

// OrderWithProducts fails only when the order is missing; an order without
// lines comes back with an empty product list.
func (s *service) OrderWithProducts(ctx context.Context, orderID uint) (OrderWithProducts, error) {
	const op = "reports.OrderWithProducts"
	var out OrderWithProducts
	err := s.view(ctx, "order_with_products", func(t query.Tables) error {
		orders, err := t.Orders(query.OrderFilter{IDs: []uint{orderID}})
		if err != nil {
			return fmt.Errorf("%s: load order: %w", op, err)
		}
		order, ok := query.First(orders)
		if !ok {
			return apperr.NotFound(op, "order %d not found", orderID)
		}
		details, err := t.OrderDetails(query.DetailFilter{OrderIDs: []uint{order.ID}})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		products, err := t.Products(query.ProductFilter{IDs: productIDs(details)})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		byID := query.IndexBy(products, func(p domain.Product) uint { return p.ID })
		out = OrderWithProducts{
			OrderID:   order.ID,
			OrderDate: order.OrderDate,
			Products: query.Map(details, func(d domain.OrderDetail) ProductLine {
				p := byID[d.ProductID]
				return ProductLine{ProductName: p.Name, Quantity: d.Quantity, Price: p.Price}
			}),
		}
		return nil
	})
	return out, err
}

func productQuantities(t query.Tables, details []domain.OrderDetail) ([]ProductQuantity, error) {
	products, err := t.Products(query.ProductFilter{IDs: productIDs(details)})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	names := productNames(products)
	return query.Map(details, func(d domain.OrderDetail) ProductQuantity {
		return ProductQuantity{ProductName: names[d.ProductID], Quantity: d.Quantity}
	}), nil
}
