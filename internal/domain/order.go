package domain

import "time"

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClientID  uint      `gorm:"column:client_id;not null;index" json:"clientId"`
	Client    *Client   `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	OrderDate time.Time `gorm:"column:order_date;not null;index" json:"orderDate"`
}

func (Order) TableName() string { return "orders" }
