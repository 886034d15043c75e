package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClientName struct {
	ClientName string `json:"clientName"`
}

type OrderSummary struct {
	OrderID   uint      `json:"orderId"`
	OrderDate time.Time `json:"orderDate"`
}

type ClientOrders struct {
	ClientName string         `json:"clientName"`
	Orders     []OrderSummary `json:"orders"`
}

type ClientProductCount struct {
	ClientName    string `json:"clientName"`
	TotalProducts int    `json:"totalProducts"`
}

type ClientSales struct {
	ClientName string          `json:"clientName"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

type ProductQuantity struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type OrderLine struct {
	OrderID     uint   `json:"orderId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type ProductLine struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderWithProducts struct {
	OrderID   uint          `json:"orderId"`
	OrderDate time.Time     `json:"orderDate"`
	Products  []ProductLine `json:"products"`
}
