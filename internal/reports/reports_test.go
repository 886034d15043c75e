package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/data/snapshot"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/observability"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
	"github.com/yungbote/sales-backend/internal/pkg/pointers"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// salesFixture has two clients named Ana, one client without orders, an order
// without lines and two products sharing the top price.
func salesFixture() *snapshot.Memory {
	return snapshot.NewMemory().
		PutClients(
			domain.Client{ID: 1, Name: "Ana", Email: "ana@example.com"},
			domain.Client{ID: 2, Name: "Leo", Email: "leo@example.com"},
			domain.Client{ID: 3, Name: "Mia", Email: "mia@example.com"},
			domain.Client{ID: 4, Name: "Ana", Email: "ana.b@example.com"},
		).
		PutProducts(
			domain.Product{ID: 1, Name: "Pen", Price: price("1.50")},
			domain.Product{ID: 2, Name: "Mug", Description: pointers.String(""), Price: price("3.00")},
			domain.Product{ID: 3, Name: "Book", Description: pointers.String("Novel"), Price: price("9.99")},
			domain.Product{ID: 4, Name: "Lamp", Description: pointers.String("Desk lamp"), Price: price("9.99")},
		).
		PutOrders(
			domain.Order{ID: 10, ClientID: 1, OrderDate: day(2024, 1, 10)},
			domain.Order{ID: 11, ClientID: 1, OrderDate: day(2024, 2, 1)},
			domain.Order{ID: 12, ClientID: 2, OrderDate: day(2024, 3, 5)},
			domain.Order{ID: 13, ClientID: 4, OrderDate: day(2024, 3, 6)},
			domain.Order{ID: 14, ClientID: 2, OrderDate: day(2024, 4, 1)},
		).
		PutOrderDetails(
			domain.OrderDetail{ID: 100, OrderID: 10, ProductID: 1, Quantity: 2},
			domain.OrderDetail{ID: 101, OrderID: 10, ProductID: 3, Quantity: 1},
			domain.OrderDetail{ID: 102, OrderID: 11, ProductID: 2, Quantity: 4},
			domain.OrderDetail{ID: 103, OrderID: 12, ProductID: 1, Quantity: 3},
			domain.OrderDetail{ID: 104, OrderID: 13, ProductID: 1, Quantity: 1},
		)
}

func newService(t *testing.T, src query.Source) Service {
	t.Helper()
	return New(src, logger.Nop(), nil)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "expected not found, got %v", err)
	assert.NotEmpty(t, apperr.MessageOf(err))
}

func names[T any](rows []T, name func(T) string) []string {
	return query.Map(rows, name)
}

func TestClientQueries(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, salesFixture())

	t.Run("search by name", func(t *testing.T) {
		got, err := svc.SearchClientsByName(ctx, "e")
		require.NoError(t, err)
		assert.Equal(t, []string{"Leo"}, names(got, func(c domain.Client) string { return c.Name }))

		all, err := svc.SearchClientsByName(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 4)

		_, err = svc.SearchClientsByName(ctx, "Zed")
		requireNotFound(t, err)
	})

	t.Run("most orders breaks ties by lowest id", func(t *testing.T) {
		got, err := svc.ClientWithMostOrders(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint(1), got.ID)
	})

	t.Run("purchasers deduplicated by name", func(t *testing.T) {
		got, err := svc.ClientsWhoPurchasedProduct(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []ClientName{{ClientName: "Ana"}, {ClientName: "Leo"}}, got)

		got, err = svc.ClientsWhoPurchasedProduct(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []ClientName{{ClientName: "Ana"}}, got)

		_, err = svc.ClientsWhoPurchasedProduct(ctx, 4)
		requireNotFound(t, err)
	})

	t.Run("clients with orders keeps the full roster", func(t *testing.T) {
		got, err := svc.ClientsWithOrders(ctx)
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, "Ana", got[0].ClientName)
		assert.Equal(t, []OrderSummary{
			{OrderID: 10, OrderDate: day(2024, 1, 10)},
			{OrderID: 11, OrderDate: day(2024, 2, 1)},
		}, got[0].Orders)
		assert.Equal(t, "Mia", got[2].ClientName)
		assert.NotNil(t, got[2].Orders)
		assert.Empty(t, got[2].Orders)
	})

	t.Run("total products reports zero for clients without orders", func(t *testing.T) {
		got, err := svc.TotalProductsByClient(ctx)
		require.NoError(t, err)
		assert.Equal(t, []ClientProductCount{
			{ClientName: "Ana", TotalProducts: 7},
			{ClientName: "Leo", TotalProducts: 3},
			{ClientName: "Mia", TotalProducts: 0},
			{ClientName: "Ana", TotalProducts: 1},
		}, got)
	})

	t.Run("sales by client", func(t *testing.T) {
		got, err := svc.SalesByClient(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Ana", got[0].ClientName)
		assert.True(t, got[0].TotalSales.Equal(price("24.99")), got[0].TotalSales.String())
		assert.Equal(t, "Leo", got[1].ClientName)
		assert.True(t, got[1].TotalSales.Equal(price("4.50")))
		assert.True(t, got[2].TotalSales.Equal(price("1.50")))
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].TotalSales.GreaterThanOrEqual(got[i].TotalSales))
		}
	})
}

func TestOrderQueries(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, salesFixture())

	t.Run("after date is exclusive", func(t *testing.T) {
		got, err := svc.OrdersAfterDate(ctx, day(2024, 2, 1))
		require.NoError(t, err)
		assert.Equal(t, []uint{12, 13, 14}, query.Map(got, func(o domain.Order) uint { return o.ID }))

		_, err = svc.OrdersAfterDate(ctx, day(2025, 1, 1))
		requireNotFound(t, err)
	})

	t.Run("details for order", func(t *testing.T) {
		got, err := svc.OrderDetailsFor(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []ProductQuantity{{ProductName: "Pen", Quantity: 2}, {ProductName: "Book", Quantity: 1}}, got)

		_, err = svc.OrderDetailsFor(ctx, 14)
		requireNotFound(t, err)
	})

	t.Run("total quantity conflates zero and absent", func(t *testing.T) {
		got, err := svc.TotalQuantityForOrder(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, got)

		_, err = svc.TotalQuantityForOrder(ctx, 14)
		requireNotFound(t, err)
		_, err = svc.TotalQuantityForOrder(ctx, 999)
		requireNotFound(t, err)
	})

	t.Run("all details with product", func(t *testing.T) {
		got, err := svc.AllOrderDetailsWithProduct(ctx)
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, OrderLine{OrderID: 11, ProductName: "Mug", Quantity: 4}, got[2])
	})

	t.Run("products sold to client", func(t *testing.T) {
		got, err := svc.ProductsSoldToClient(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []ProductQuantity{
			{ProductName: "Pen", Quantity: 2},
			{ProductName: "Book", Quantity: 1},
			{ProductName: "Mug", Quantity: 4},
		}, got)

		_, err = svc.ProductsSoldToClient(ctx, 3)
		requireNotFound(t, err)
	})

	t.Run("order with products", func(t *testing.T) {
		got, err := svc.OrderWithProducts(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, uint(10), got.OrderID)
		assert.Equal(t, day(2024, 1, 10), got.OrderDate)
		require.Len(t, got.Products, 2)
		assert.Equal(t, "Book", got.Products[1].ProductName)
		assert.True(t, got.Products[1].Price.Equal(price("9.99")))

		empty, err := svc.OrderWithProducts(ctx, 14)
		require.NoError(t, err)
		assert.NotNil(t, empty.Products)
		assert.Empty(t, empty.Products)

		_, err = svc.OrderWithProducts(ctx, 999)
		requireNotFound(t, err)
	})
}

func TestProductQueries(t *testing.T) {
	ctx := context.Background()
	store := salesFixture()
	svc := newService(t, store)

	t.Run("above price is strict", func(t *testing.T) {
		got, err := svc.ProductsAbovePrice(ctx, price("3.00"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Book", "Lamp"}, names(got, func(p domain.Product) string { return p.Name }))

		_, err = svc.ProductsAbovePrice(ctx, price("9.99"))
		requireNotFound(t, err)
	})

	t.Run("most expensive returns one of the tied maxima", func(t *testing.T) {
		got, err := svc.MostExpensiveProduct(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint(3), got.ID)
		assert.True(t, got.Price.Equal(price("9.99")))
	})

	t.Run("without description", func(t *testing.T) {
		got, err := svc.ProductsWithoutDescription(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Pen", "Mug"}, names(got, func(p domain.Product) string { return p.Name }))
	})

	t.Run("average follows current prices", func(t *testing.T) {
		got, err := svc.AveragePrice(ctx)
		require.NoError(t, err)
		assert.True(t, got.Equal(price("6.12")), got.String())

		store.PutProducts(domain.Product{ID: 1, Name: "Pen", Price: price("5.50")})
		got, err = svc.AveragePrice(ctx)
		require.NoError(t, err)
		assert.True(t, got.Equal(price("7.12")), got.String())
	})
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, snapshot.NewMemory())

	roster, err := svc.ClientsWithOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster)

	totals, err := svc.TotalProductsByClient(ctx)
	require.NoError(t, err)
	assert.Empty(t, totals)

	_, err = svc.ClientWithMostOrders(ctx)
	requireNotFound(t, err)
	_, err = svc.SalesByClient(ctx)
	requireNotFound(t, err)
	_, err = svc.AllOrderDetailsWithProduct(ctx)
	requireNotFound(t, err)
	_, err = svc.MostExpensiveProduct(ctx)
	requireNotFound(t, err)
	_, err = svc.AveragePrice(ctx)
	requireNotFound(t, err)
	_, err = svc.ProductsWithoutDescription(ctx)
	requireNotFound(t, err)
}

func TestAveragePriceZeroIsNotFound(t *testing.T) {
	store := snapshot.NewMemory().PutProducts(
		domain.Product{Name: "Sample", Price: decimal.Zero},
		domain.Product{Name: "Flyer", Price: decimal.Zero},
	)
	_, err := newService(t, store).AveragePrice(context.Background())
	requireNotFound(t, err)
}

func TestUnresolvedClients(t *testing.T) {
	ctx := context.Background()
	store := snapshot.NewMemory().
		PutProducts(domain.Product{ID: 1, Name: "Pen", Price: price("2.00")}).
		PutOrders(domain.Order{ID: 1, ClientID: 99, OrderDate: day(2024, 1, 1)}).
		PutOrderDetails(domain.OrderDetail{ID: 1, OrderID: 1, ProductID: 1, Quantity: 2})
	svc := newService(t, store)

	sales, err := svc.SalesByClient(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, UnknownClientName, sales[0].ClientName)
	assert.True(t, sales[0].TotalSales.Equal(price("4.00")))

	_, err = svc.ClientWithMostOrders(ctx)
	requireNotFound(t, err)
}

func TestClientWithMostOrdersByCount(t *testing.T) {
	store := snapshot.NewMemory().
		PutClients(domain.Client{ID: 1, Name: "Ana"}, domain.Client{ID: 2, Name: "Leo"}).
		PutOrders(
			domain.Order{ID: 10, ClientID: 1, OrderDate: day(2024, 1, 1)},
			domain.Order{ID: 11, ClientID: 1, OrderDate: day(2024, 1, 2)},
			domain.Order{ID: 12, ClientID: 2, OrderDate: day(2024, 1, 3)},
		)
	got, err := newService(t, store).ClientWithMostOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestProductsWithoutDescriptionNullOrEmpty(t *testing.T) {
	store := snapshot.NewMemory().PutProducts(
		domain.Product{ID: 1, Name: "Pen", Price: price("1.50")},
		domain.Product{ID: 2, Name: "Mug", Description: pointers.String(""), Price: price("3.00")},
		domain.Product{ID: 3, Name: "Book", Description: pointers.String("Novel"), Price: price("9.99")},
	)
	got, err := newService(t, store).ProductsWithoutDescription(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pen", "Mug"}, names(got, func(p domain.Product) string { return p.Name }))
}

func TestOrdersAfterDateWithoutOrders(t *testing.T) {
	_, err := newService(t, snapshot.NewMemory()).OrdersAfterDate(context.Background(), time.Now())
	requireNotFound(t, err)
}

func TestSalesByClientSingleLine(t *testing.T) {
	store := snapshot.NewMemory().
		PutClients(domain.Client{ID: 1, Name: "Ana"}).
		PutProducts(domain.Product{ID: 7, Name: "Cup", Price: price("4.00")}).
		PutOrders(domain.Order{ID: 5, ClientID: 1, OrderDate: day(2024, 5, 1)}).
		PutOrderDetails(domain.OrderDetail{ID: 1, OrderID: 5, ProductID: 7, Quantity: 2})
	got, err := newService(t, store).SalesByClient(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].ClientName)
	assert.True(t, got[0].TotalSales.Equal(price("8.00")))
}

type failingSource struct{ err error }

func (f failingSource) View(context.Context, func(query.Tables) error) error { return f.err }

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := newService(t, failingSource{err: boom}).SalesByClient(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, apperr.ErrNotFound))
}

func TestReportMetrics(t *testing.T) {
	m := observability.NewMetrics()
	svc := New(salesFixture(), logger.Nop(), m)

	_, err := svc.MostExpensiveProduct(context.Background())
	require.NoError(t, err)
	_, err = svc.OrderDetailsFor(context.Background(), 999)
	requireNotFound(t, err)

	n, err := promtestutil.GatherAndCount(m.Gatherer(), "sales_report_queries_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
