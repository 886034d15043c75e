package reports

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/domain"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
)

// SearchClientsByName matches using the store's collation; "" matches every client.
func (s *service) SearchClientsByName(ctx context.Context, substring string) ([]domain.Client, error) {
	const op = "reports.SearchClientsByName"
	var out []domain.Client
	err := s.view(ctx, "search_clients_by_name", func(t query.Tables) error {
		clients, err := t.Clients(query.ClientFilter{NameContains: &substring})
		if err != nil {
			return fmt.Errorf("%s: list clients: %w", op, err)
		}
		if len(clients) == 0 {
			return apperr.NotFound(op, "no clients found with a name containing %q", substring)
		}
		out = clients
		return nil
	})
	return out, err
}

// ClientWithMostOrders counts orders per client. Equal counts go to the lowest
// client id.
func (s *service) ClientWithMostOrders(ctx context.Context) (domain.Client, error) {
	const op = "reports.ClientWithMostOrders"
	var out domain.Client
	err := s.view(ctx, "client_with_most_orders", func(t query.Tables) error {
		orders, err := t.Orders(query.OrderFilter{})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		groups := query.GroupBy(orders, func(o domain.Order) uint { return o.ClientID })
		top, ok := query.First(groups)
		if !ok {
			return apperr.NotFound(op, "no clients found")
		}
		for _, g := range groups[1:] {
			if len(g.Rows) > len(top.Rows) || (len(g.Rows) == len(top.Rows) && g.Key < top.Key) {
				top = g
			}
		}
		clients, err := t.Clients(query.ClientFilter{IDs: []uint{top.Key}})
		if err != nil {
			return fmt.Errorf("%s: load client: %w", op, err)
		}
		client, ok := query.First(clients)
		if !ok {
			return apperr.NotFound(op, "client not found")
		}
		out = client
		return nil
	})
	return out, err
}

// ClientsWhoPurchasedProduct walks detail -> order -> client and keeps each
// client name once, in the order the purchases were recorded.
func (s *service) ClientsWhoPurchasedProduct(ctx context.Context, productID uint) ([]ClientName, error) {
	const op = "reports.ClientsWhoPurchasedProduct"
	var out []ClientName
	err := s.view(ctx, "clients_who_purchased_product", func(t query.Tables) error {
		details, err := t.OrderDetails(query.DetailFilter{ProductIDs: []uint{productID}})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		orders, err := t.Orders(query.OrderFilter{IDs: query.Pluck(details, func(d domain.OrderDetail) uint { return d.OrderID })})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		clients, err := t.Clients(query.ClientFilter{IDs: query.Pluck(orders, func(o domain.Order) uint { return o.ClientID })})
		if err != nil {
			return fmt.Errorf("%s: list clients: %w", op, err)
		}
		orderByID := query.IndexBy(orders, func(o domain.Order) uint { return o.ID })
		clientByID := query.IndexBy(clients, func(c domain.Client) uint { return c.ID })

		names := make([]ClientName, 0, len(details))
		for _, d := range details {
			o, ok := orderByID[d.OrderID]
			if !ok {
				continue
			}
			c, ok := clientByID[o.ClientID]
			if !ok {
				continue
			}
			names = append(names, ClientName{ClientName: c.Name})
		}
		names = query.DistinctBy(names, func(n ClientName) string { return n.ClientName })
		if len(names) == 0 {
			return apperr.NotFound(op, "no clients found who purchased product %d", productID)
		}
		out = names
		return nil
	})
	return out, err
}

// ClientsWithOrders returns the full roster; clients without orders carry an
// empty list. An empty roster is a valid result.
func (s *service) ClientsWithOrders(ctx context.Context) ([]ClientOrders, error) {
	const op = "reports.ClientsWithOrders"
	var out []ClientOrders
	err := s.view(ctx, "clients_with_orders", func(t query.Tables) error {
		clients, err := t.Clients(query.ClientFilter{})
		if err != nil {
			return fmt.Errorf("%s: list clients: %w", op, err)
		}
		orders, err := t.Orders(query.OrderFilter{})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		byClient := query.Lookup(orders, func(o domain.Order) uint { return o.ClientID })
		out = query.Map(clients, func(c domain.Client) ClientOrders {
			return ClientOrders{
				ClientName: c.Name,
				Orders: query.Map(byClient[c.ID], func(o domain.Order) OrderSummary {
					return OrderSummary{OrderID: o.ID, OrderDate: o.OrderDate}
				}),
			}
		})
		return nil
	})
	return out, err
}

// TotalProductsByClient sums purchased quantities per client and left-joins
// the sums onto the roster, so clients without orders report 0.
func (s *service) TotalProductsByClient(ctx context.Context) ([]ClientProductCount, error) {
	const op = "reports.TotalProductsByClient"
	var out []ClientProductCount
	err := s.view(ctx, "total_products_by_client", func(t query.Tables) error {
		clients, err := t.Clients(query.ClientFilter{})
		if err != nil {
			return fmt.Errorf("%s: list clients: %w", op, err)
		}
		orders, err := t.Orders(query.OrderFilter{})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		details, err := t.OrderDetails(query.DetailFilter{})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		orderByID := query.IndexBy(orders, func(o domain.Order) uint { return o.ID })
		totals := make(map[uint]int, len(clients))
		for _, d := range details {
			if o, ok := orderByID[d.OrderID]; ok {
				totals[o.ClientID] += d.Quantity
			}
		}
		out = query.Map(clients, func(c domain.Client) ClientProductCount {
			return ClientProductCount{ClientName: c.Name, TotalProducts: totals[c.ID]}
		})
		return nil
	})
	return out, err
}

// SalesByClient totals quantity * price per client that has orders, highest
// first. Equal totals keep ascending client id order.
func (s *service) SalesByClient(ctx context.Context) ([]ClientSales, error) {
	const op = "reports.SalesByClient"
	var out []ClientSales
	err := s.view(ctx, "sales_by_client", func(t query.Tables) error {
		orders, err := t.Orders(query.OrderFilter{})
		if err != nil {
			return fmt.Errorf("%s: list orders: %w", op, err)
		}
		if len(orders) == 0 {
			return apperr.NotFound(op, "no client sales found")
		}
		// Every order is loaded, so every line belongs to one of them.
		details, err := t.OrderDetails(query.DetailFilter{})
		if err != nil {
			return fmt.Errorf("%s: list details: %w", op, err)
		}
		products, err := t.Products(query.ProductFilter{IDs: productIDs(details)})
		if err != nil {
			return fmt.Errorf("%s: list products: %w", op, err)
		}
		groups := query.GroupBy(orders, func(o domain.Order) uint { return o.ClientID })
		slices.SortFunc(groups, func(a, b query.Group[uint, domain.Order]) int {
			switch {
			case a.Key < b.Key:
				return -1
			case a.Key > b.Key:
				return 1
			}
			return 0
		})
		clients, err := t.Clients(query.ClientFilter{IDs: query.Map(groups, func(g query.Group[uint, domain.Order]) uint { return g.Key })})
		if err != nil {
			return fmt.Errorf("%s: list clients: %w", op, err)
		}
		clientByID := query.IndexBy(clients, func(c domain.Client) uint { return c.ID })
		productByID := query.IndexBy(products, func(p domain.Product) uint { return p.ID })
		detailsByOrder := query.Lookup(details, func(d domain.OrderDetail) uint { return d.OrderID })

		sales := make([]ClientSales, 0, len(groups))
		for _, g := range groups {
			total := decimal.Zero
			for _, o := range g.Rows {
				for _, d := range detailsByOrder[o.ID] {
					if p, ok := productByID[d.ProductID]; ok {
						total = total.Add(d.LineTotal(p.Price))
					}
				}
			}
			name := UnknownClientName
			if c, ok := clientByID[g.Key]; ok {
				name = c.Name
			}
			sales = append(sales, ClientSales{ClientName: name, TotalSales: total})
		}
		query.SortStableDesc(sales, func(a, b ClientSales) bool { return a.TotalSales.GreaterThan(b.TotalSales) })
		out = sales
		return nil
	})
	return out, err
}
