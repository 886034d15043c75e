package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/sales-backend/internal/data/db"
	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/data/repos/testutil"
	"github.com/yungbote/sales-backend/internal/data/snapshot"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/pointers"
)

// TestReportsOverGorm runs the report set against a real database. Ids are
// assigned by the store, so assertions go through names and values.
func TestReportsOverGorm(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := t.Context()

	clients := []domain.Client{{Name: "Ana"}, {Name: "Leo"}, {Name: "Mia"}}
	require.NoError(t, tx.Create(&clients).Error)
	products := []domain.Product{
		{Name: "Pen", Price: price("1.50")},
		{Name: "Mug", Description: pointers.String(""), Price: price("3.00")},
		{Name: "Book", Description: pointers.String("Novel"), Price: price("9.99")},
	}
	require.NoError(t, tx.Create(&products).Error)
	orders := []domain.Order{
		{ClientID: clients[0].ID, OrderDate: day(2024, 1, 10)},
		{ClientID: clients[0].ID, OrderDate: day(2024, 2, 1)},
		{ClientID: clients[1].ID, OrderDate: day(2024, 3, 5)},
	}
	require.NoError(t, tx.Create(&orders).Error)
	details := []domain.OrderDetail{
		{OrderID: orders[0].ID, ProductID: products[0].ID, Quantity: 2},
		{OrderID: orders[0].ID, ProductID: products[2].ID, Quantity: 1},
		{OrderID: orders[1].ID, ProductID: products[1].ID, Quantity: 4},
		{OrderID: orders[2].ID, ProductID: products[0].ID, Quantity: 3},
	}
	require.NoError(t, tx.Create(&details).Error)

	svc := New(snapshot.NewGormSource(tx, db.ReadTxOptionsFor(testutil.Driver()), testutil.Logger(t)), testutil.Logger(t), nil)

	top, err := svc.ClientWithMostOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", top.Name)

	sales, err := svc.SalesByClient(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Ana", sales[0].ClientName)
	assert.True(t, sales[0].TotalSales.Equal(price("24.99")), sales[0].TotalSales.String())
	assert.True(t, sales[1].TotalSales.Equal(price("4.50")), sales[1].TotalSales.String())

	totals, err := svc.TotalProductsByClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ClientProductCount{
		{ClientName: "Ana", TotalProducts: 7},
		{ClientName: "Leo", TotalProducts: 3},
		{ClientName: "Mia", TotalProducts: 0},
	}, totals)

	buyers, err := svc.ClientsWhoPurchasedProduct(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []ClientName{{ClientName: "Ana"}, {ClientName: "Leo"}}, buyers)

	later, err := svc.OrdersAfterDate(ctx, day(2024, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, []uint{orders[2].ID}, query.Map(later, func(o domain.Order) uint { return o.ID }))

	qty, err := svc.TotalQuantityForOrder(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, qty)

	view, err := svc.OrderWithProducts(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.True(t, view.OrderDate.Equal(day(2024, 1, 10)))
	assert.Equal(t, []string{"Pen", "Book"}, query.Map(view.Products, func(p ProductLine) string { return p.ProductName }))

	avg, err := svc.AveragePrice(ctx)
	require.NoError(t, err)
	assert.True(t, avg.Equal(price("4.83")), avg.String())

	expensive, err := svc.MostExpensiveProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Book", expensive.Name)

	bare, err := svc.ProductsWithoutDescription(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pen", "Mug"}, query.Map(bare, func(p domain.Product) string { return p.Name }))

	_, err = svc.OrderDetailsFor(ctx, orders[2].ID+100)
	requireNotFound(t, err)
}

// TestReportsOverGormManyOrders keeps more order ids in flight than SQLite
// accepts as bind variables in one statement.
func TestReportsOverGormManyOrders(t *testing.T) {
	if testing.Short() {
		t.Skip("seeds 40000 orders")
	}
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := t.Context()

	clients := []domain.Client{{Name: "Ana"}, {Name: "Leo"}}
	require.NoError(t, tx.Create(&clients).Error)
	products := []domain.Product{{Name: "Pen", Price: price("1.50")}, {Name: "Book", Price: price("9.99")}}
	require.NoError(t, tx.Create(&products).Error)

	const n = 40000
	orders := make([]domain.Order, n)
	for i := range orders {
		orders[i] = domain.Order{ClientID: clients[0].ID, OrderDate: day(2024, 1, 1+i%28)}
	}
	orders[n-1].ClientID = clients[1].ID
	require.NoError(t, tx.CreateInBatches(&orders, 500).Error)
	details := []domain.OrderDetail{
		{OrderID: orders[0].ID, ProductID: products[0].ID, Quantity: 2},
		{OrderID: orders[n-2].ID, ProductID: products[1].ID, Quantity: 1},
		{OrderID: orders[n-1].ID, ProductID: products[0].ID, Quantity: 4},
	}
	require.NoError(t, tx.Create(&details).Error)

	svc := New(snapshot.NewGormSource(tx, db.ReadTxOptionsFor(testutil.Driver()), testutil.Logger(t)), testutil.Logger(t), nil)

	sales, err := svc.SalesByClient(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Ana", sales[0].ClientName)
	assert.True(t, sales[0].TotalSales.Equal(price("12.99")), sales[0].TotalSales.String())
	assert.True(t, sales[1].TotalSales.Equal(price("6.00")), sales[1].TotalSales.String())

	sold, err := svc.ProductsSoldToClient(ctx, clients[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []ProductQuantity{{ProductName: "Pen", Quantity: 2}, {ProductName: "Book", Quantity: 1}}, sold)

	totals, err := svc.TotalProductsByClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ClientProductCount{{ClientName: "Ana", TotalProducts: 3}, {ClientName: "Leo", TotalProducts: 4}}, totals)

	withOrders, err := svc.ClientsWithOrders(ctx)
	require.NoError(t, err)
	require.Len(t, withOrders, 2)
	assert.Len(t, withOrders[0].Orders, n-1)

	top, err := svc.ClientWithMostOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", top.Name)
}
