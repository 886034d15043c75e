// Package query is the read contract the reporting layer depends on: a
// snapshot-scoped view over the four sales collections plus the in-process
// join/group/order combinators used to compose projections from them.
package query

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yungbote/sales-backend/internal/domain"
)

// Source opens read snapshots. Implementations guarantee that every read made
// through the Tables handed to fn observes the same committed state, and that
// Tables is not used after fn returns.
type Source interface {
	View(ctx context.Context, fn func(Tables) error) error
}

// Tables is read-only, filtered access to the entity collections. Every method
// returns rows in ascending id order.
type Tables interface {
	Clients(f ClientFilter) ([]domain.Client, error)
	Products(f ProductFilter) ([]domain.Product, error)
	Orders(f OrderFilter) ([]domain.Order, error)
	OrderDetails(f DetailFilter) ([]domain.OrderDetail, error)
}

// Id slices in the filters below follow one rule: nil leaves the column
// unconstrained, a non-nil empty slice matches nothing.

type ClientFilter struct {
	IDs []uint
	// NameContains keeps clients whose name contains the substring, using the
	// store's default collation. Nil disables the filter; "" matches everyone.
	NameContains *string
}

type ProductFilter struct {
	IDs []uint
	// PriceAbove keeps products priced strictly above the value.
	PriceAbove *decimal.Decimal
	// MissingDescription keeps products whose description is null or empty.
	MissingDescription bool
}

type OrderFilter struct {
	IDs       []uint
	ClientIDs []uint
	// After keeps orders dated strictly after the instant.
	After *time.Time
}

type DetailFilter struct {
	IDs        []uint
	OrderIDs   []uint
	ProductIDs []uint
}

// MatchesNone reports whether an id constraint can only produce an empty result.
func MatchesNone(ids []uint) bool {
	return ids != nil && len(ids) == 0
}

// Matches reports whether the filter admits c. Stores that evaluate filters in
// process use it; SQL stores push the same conditions down.
// Name matching here is a case-sensitive substring test.
func (f ClientFilter) Matches(c domain.Client) bool {
	if f.IDs != nil && !containsID(f.IDs, c.ID) {
		return false
	}
	if f.NameContains != nil && !strings.Contains(c.Name, *f.NameContains) {
		return false
	}
	return true
}

func (f ProductFilter) Matches(p domain.Product) bool {
	if f.IDs != nil && !containsID(f.IDs, p.ID) {
		return false
	}
	if f.PriceAbove != nil && !p.Price.GreaterThan(*f.PriceAbove) {
		return false
	}
	if f.MissingDescription && p.HasDescription() {
		return false
	}
	return true
}

func (f OrderFilter) Matches(o domain.Order) bool {
	if f.IDs != nil && !containsID(f.IDs, o.ID) {
		return false
	}
	if f.ClientIDs != nil && !containsID(f.ClientIDs, o.ClientID) {
		return false
	}
	if f.After != nil && !o.OrderDate.After(*f.After) {
		return false
	}
	return true
}

func (f DetailFilter) Matches(d domain.OrderDetail) bool {
	if f.IDs != nil && !containsID(f.IDs, d.ID) {
		return false
	}
	if f.OrderIDs != nil && !containsID(f.OrderIDs, d.OrderID) {
		return false
	}
	if f.ProductIDs != nil && !containsID(f.ProductIDs, d.ProductID) {
		return false
	}
	return true
}

// Empty reports whether the filter can only produce an empty result, so the
// store may answer without a round trip.
func (f ClientFilter) Empty() bool  { return MatchesNone(f.IDs) }
func (f ProductFilter) Empty() bool { return MatchesNone(f.IDs) }
func (f OrderFilter) Empty() bool {
	return MatchesNone(f.IDs) || MatchesNone(f.ClientIDs)
}
func (f DetailFilter) Empty() bool {
	return MatchesNone(f.IDs) || MatchesNone(f.OrderIDs) || MatchesNone(f.ProductIDs)
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
