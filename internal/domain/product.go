package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description *string         `gorm:"column:description" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0" json:"price"`
}

func (Product) TableName() string { return "products" }

// HasDescription reports whether the description is present and non-empty.
func (p Product) HasDescription() bool {
	return p.Description != nil && *p.Description != ""
}

// Normalize trims the name and collapses a blank description to nil.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		p.Description = nil
	}
}
