package snapshot

import (
	"context"
	"slices"
	"sync"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/domain"
)

// Memory is an in-process store. Rows are kept in id order and Views hold a
// read lock for their whole duration. Name matching is case-sensitive.
type Memory struct {
	mu       sync.RWMutex
	clients  []domain.Client
	products []domain.Product
	orders   []domain.Order
	details  []domain.OrderDetail
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) View(ctx context.Context, fn func(query.Tables) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(memTables{m: m})
}

// PutClients inserts or replaces clients by id; a zero id gets the next one.
func (m *Memory) PutClients(rows ...domain.Client) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.clients = put(m.clients, r, func(c domain.Client) uint { return c.ID }, func(c *domain.Client, id uint) { c.ID = id })
	}
	return m
}

func (m *Memory) PutProducts(rows ...domain.Product) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.products = put(m.products, r, func(p domain.Product) uint { return p.ID }, func(p *domain.Product, id uint) { p.ID = id })
	}
	return m
}

func (m *Memory) PutOrders(rows ...domain.Order) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.orders = put(m.orders, r, func(o domain.Order) uint { return o.ID }, func(o *domain.Order, id uint) { o.ID = id })
	}
	return m
}

func (m *Memory) PutOrderDetails(rows ...domain.OrderDetail) *Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rows {
		m.details = put(m.details, r, func(d domain.OrderDetail) uint { return d.ID }, func(d *domain.OrderDetail, id uint) { d.ID = id })
	}
	return m
}

func put[T any](rows []T, row T, id func(T) uint, setID func(*T, uint)) []T {
	if id(row) == 0 {
		var next uint = 1
		if len(rows) > 0 {
			next = id(rows[len(rows)-1]) + 1
		}
		setID(&row, next)
	}
	i, found := slices.BinarySearchFunc(rows, id(row), func(r T, target uint) int {
		switch {
		case id(r) < target:
			return -1
		case id(r) > target:
			return 1
		}
		return 0
	})
	if found {
		rows[i] = row
		return rows
	}
	return slices.Insert(rows, i, row)
}

type memTables struct {
	m *Memory
}

func (t memTables) Clients(f query.ClientFilter) ([]domain.Client, error) {
	if f.Empty() {
		return []domain.Client{}, nil
	}
	return query.Filter(t.m.clients, f.Matches), nil
}

func (t memTables) Products(f query.ProductFilter) ([]domain.Product, error) {
	if f.Empty() {
		return []domain.Product{}, nil
	}
	return query.Filter(t.m.products, f.Matches), nil
}

func (t memTables) Orders(f query.OrderFilter) ([]domain.Order, error) {
	if f.Empty() {
		return []domain.Order{}, nil
	}
	return query.Filter(t.m.orders, f.Matches), nil
}

func (t memTables) OrderDetails(f query.DetailFilter) ([]domain.OrderDetail, error) {
	if f.Empty() {
		return []domain.OrderDetail{}, nil
	}
	return query.Filter(t.m.details, f.Matches), nil
}
