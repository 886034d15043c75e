package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/app"
	"github.com/yungbote/sales-backend/internal/data/db"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	"github.com/yungbote/sales-backend/internal/pkg/pointers"
)

type line struct {
	orderID   uint
	productID uint
	quantity  int
}

func day(d int) time.Time { return time.Date(2024, time.January, d, 12, 0, 0, 0, time.UTC) }

var (
	clients = []domain.Client{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
		{ID: 2, Name: "Leo", Email: "leo@example.com"},
	}
	products = []domain.Product{
		{ID: 1, Name: "Pen", Price: decimal.RequireFromString("1.50")},
		{ID: 2, Name: "Mug", Description: pointers.String(""), Price: decimal.RequireFromString("3.00")},
		{ID: 3, Name: "Book", Description: pointers.String("Novel"), Price: decimal.RequireFromString("9.99")},
		{ID: 7, Name: "Lamp", Description: pointers.String("Desk lamp"), Price: decimal.RequireFromString("4.00")},
	}
	orders = []domain.Order{
		{ID: 5, ClientID: 2, OrderDate: day(3)},
		{ID: 10, ClientID: 1, OrderDate: day(5)},
		{ID: 11, ClientID: 1, OrderDate: day(9)},
		{ID: 12, ClientID: 2, OrderDate: day(14)},
	}
	lines = []line{
		{orderID: 5, productID: 7, quantity: 2},
		{orderID: 10, productID: 1, quantity: 4},
		{orderID: 10, productID: 3, quantity: 1},
		{orderID: 11, productID: 2, quantity: 2},
		{orderID: 12, productID: 1, quantity: 1},
	}
)

func main() {
	var dryRun bool
	var reset bool
	flag.BoolVar(&dryRun, "dry-run", false, "print the dataset without writing it")
	flag.BoolVar(&reset, "reset", false, "delete every existing row before seeding")
	flag.Parse()

	if dryRun {
		for _, c := range clients {
			fmt.Printf("[dry-run] client id=%d name=%q\n", c.ID, c.Name)
		}
		for _, p := range products {
			fmt.Printf("[dry-run] product id=%d name=%q price=%s\n", p.ID, p.Name, p.Price.StringFixed(2))
		}
		for _, o := range orders {
			fmt.Printf("[dry-run] order id=%d client_id=%d date=%s\n", o.ID, o.ClientID, o.OrderDate.Format(time.DateOnly))
		}
		for _, l := range lines {
			fmt.Printf("[dry-run] detail order_id=%d product_id=%d quantity=%d\n", l.orderID, l.productID, l.quantity)
		}
		return
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx := context.Background()
	if reset {
		if err := db.Truncate(application.DB.WithContext(ctx)); err != nil {
			fmt.Printf("reset: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("existing rows deleted")
	}

	// One transaction so a failed seed leaves nothing behind.
	err = application.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		svc := application.Services
		for i := range clients {
			if _, err := svc.Client.Create(dbc, &clients[i]); err != nil {
				return fmt.Errorf("client %d: %w", clients[i].ID, err)
			}
		}
		for i := range products {
			if _, err := svc.Product.Create(dbc, &products[i]); err != nil {
				return fmt.Errorf("product %d: %w", products[i].ID, err)
			}
		}
		for i := range orders {
			if _, err := svc.Order.Create(dbc, &orders[i]); err != nil {
				return fmt.Errorf("order %d: %w", orders[i].ID, err)
			}
		}
		for _, l := range lines {
			detail := &domain.OrderDetail{ProductID: l.productID, Quantity: l.quantity}
			if _, err := svc.Order.AddDetail(dbc, l.orderID, detail); err != nil {
				return fmt.Errorf("detail for order %d: %w", l.orderID, err)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Printf("seed failed: %v\n", err)
		os.Exit(1)
	}

	if application.Cfg.DB.Driver == db.DriverPostgres {
		if err := db.ResetSequences(application.DB.WithContext(ctx)); err != nil {
			fmt.Printf("reset sequences: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("done; clients=%d products=%d orders=%d details=%d\n", len(clients), len(products), len(orders), len(lines))
}
