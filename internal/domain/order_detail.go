package domain

import "github.com/shopspring/decimal"

// OrderDetail is one line item of an order.
type OrderDetail struct {
	ID        uint     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID   uint     `gorm:"column:order_id;not null;index" json:"orderId"`
	Order     *Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ProductID uint     `gorm:"column:product_id;not null;index" json:"productId"`
	Product   *Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int      `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderDetail) TableName() string { return "order_details" }

// LineTotal is quantity * price for the given unit price.
func (d OrderDetail) LineTotal(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(d.Quantity)))
}
