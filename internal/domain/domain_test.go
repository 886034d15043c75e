package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	d := OrderDetail{Quantity: 3}
	assert.True(t, d.LineTotal(decimal.RequireFromString("1.50")).Equal(decimal.RequireFromString("4.50")))
	assert.True(t, OrderDetail{}.LineTotal(decimal.RequireFromString("9.99")).IsZero())
}

func TestProductDescription(t *testing.T) {
	blank := "  "
	novel := "Novel"
	empty := ""

	assert.False(t, Product{}.HasDescription())
	assert.False(t, Product{Description: &empty}.HasDescription())
	assert.True(t, Product{Description: &novel}.HasDescription())

	p := Product{Name: "  Pen ", Description: &blank}
	p.Normalize()
	assert.Equal(t, "Pen", p.Name)
	assert.Nil(t, p.Description)

	q := Product{Name: "Book", Description: &novel}
	q.Normalize()
	assert.Equal(t, &novel, q.Description)
}

func TestModelsParentsFirst(t *testing.T) {
	models := Models()
	assert.Len(t, models, 4)
	assert.IsType(t, &Client{}, models[0])
	assert.IsType(t, &OrderDetail{}, models[len(models)-1])
}
