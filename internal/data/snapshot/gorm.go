// Package snapshot implements query.Source over gorm and over plain memory.
package snapshot

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

// DefaultIDBatch bounds the ids bound into one IN clause. SQLite stops at
// 32766 variables and Postgres at 65535 parameters per statement.
const DefaultIDBatch = 1000

// GormSource runs each View inside one transaction, so all reads of a report
// share a snapshot when the isolation level provides one.
type GormSource struct {
	db    *gorm.DB
	opts  *sql.TxOptions
	log   *logger.Logger
	batch int
}

func NewGormSource(db *gorm.DB, opts *sql.TxOptions, baseLog *logger.Logger) *GormSource {
	return &GormSource{db: db, opts: opts, log: baseLog.With("source", "GormSource"), batch: DefaultIDBatch}
}

func (s *GormSource) View(ctx context.Context, fn func(query.Tables) error) error {
	run := func(tx *gorm.DB) error { return fn(gormTables{tx: tx, batch: s.batch, log: s.log}) }
	if s.opts == nil {
		return s.db.WithContext(ctx).Transaction(run)
	}
	return s.db.WithContext(ctx).Transaction(run, s.opts)
}

type gormTables struct {
	tx    *gorm.DB
	batch int
	log   *logger.Logger
}

func (t gormTables) Clients(f query.ClientFilter) ([]domain.Client, error) {
	if f.Empty() {
		return []domain.Client{}, nil
	}
	base := func() *gorm.DB {
		q := t.tx.Model(&domain.Client{})
		if f.NameContains != nil && *f.NameContains != "" {
			q = q.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(*f.NameContains)+"%")
		}
		return q
	}
	return findByIDs(t, "clients", base, clientID,
		idColumn[domain.Client]{name: "id", ids: f.IDs, value: clientID},
	)
}

func (t gormTables) Products(f query.ProductFilter) ([]domain.Product, error) {
	if f.Empty() {
		return []domain.Product{}, nil
	}
	base := func() *gorm.DB {
		q := t.tx.Model(&domain.Product{})
		if f.PriceAbove != nil {
			q = q.Where("price > ?", *f.PriceAbove)
		}
		if f.MissingDescription {
			q = q.Where("(description IS NULL OR description = '')")
		}
		return q
	}
	return findByIDs(t, "products", base, productID,
		idColumn[domain.Product]{name: "id", ids: f.IDs, value: productID},
	)
}

func (t gormTables) Orders(f query.OrderFilter) ([]domain.Order, error) {
	if f.Empty() {
		return []domain.Order{}, nil
	}
	base := func() *gorm.DB {
		q := t.tx.Model(&domain.Order{})
		if f.After != nil {
			q = q.Where("order_date > ?", f.After.UTC())
		}
		return q
	}
	return findByIDs(t, "orders", base, orderID,
		idColumn[domain.Order]{name: "id", ids: f.IDs, value: orderID},
		idColumn[domain.Order]{name: "client_id", ids: f.ClientIDs, value: func(o domain.Order) uint { return o.ClientID }},
	)
}

func (t gormTables) OrderDetails(f query.DetailFilter) ([]domain.OrderDetail, error) {
	if f.Empty() {
		return []domain.OrderDetail{}, nil
	}
	base := func() *gorm.DB { return t.tx.Model(&domain.OrderDetail{}) }
	return findByIDs(t, "order_details", base, detailID,
		idColumn[domain.OrderDetail]{name: "id", ids: f.IDs, value: detailID},
		idColumn[domain.OrderDetail]{name: "order_id", ids: f.OrderIDs, value: func(d domain.OrderDetail) uint { return d.OrderID }},
		idColumn[domain.OrderDetail]{name: "product_id", ids: f.ProductIDs, value: func(d domain.OrderDetail) uint { return d.ProductID }},
	)
}

func clientID(c domain.Client) uint { return c.ID }
func productID(p domain.Product) uint { return p.ID }
func orderID(o domain.Order) uint { return o.ID }
func detailID(d domain.OrderDetail) uint { return d.ID }

// idColumn is one "<name> IN (...)" constraint; nil ids leave it out.
type idColumn[T any] struct {
	name  string
	ids   []uint
	value func(T) uint
}

// findByIDs runs base() under the id constraints without ever binding more
// than t.batch ids in one statement. The longest list is split into batches,
// one query each; other lists that still do not fit are applied in process.
// Rows come back in ascending id order either way.
func findByIDs[T any](t gormTables, table string, base func() *gorm.DB, id func(T) uint, cols ...idColumn[T]) ([]T, error) {
	driver := -1
	for i, c := range cols {
		if c.ids != nil && (driver < 0 || len(c.ids) > len(cols[driver].ids)) {
			driver = i
		}
	}

	var leftover []idColumn[T]
	constrain := func(q *gorm.DB) *gorm.DB {
		for i, c := range cols {
			if c.ids == nil || i == driver || len(c.ids) > t.batch {
				continue
			}
			q = q.Where(c.name+" IN ?", c.ids)
		}
		return q
	}
	for i, c := range cols {
		if c.ids != nil && i != driver && len(c.ids) > t.batch {
			leftover = append(leftover, c)
		}
	}

	out := []T{}
	if driver < 0 || len(cols[driver].ids) <= t.batch {
		q := constrain(base())
		if driver >= 0 {
			q = q.Where(cols[driver].name+" IN ?", cols[driver].ids)
		}
		if err := q.Order("id ASC").Find(&out).Error; err != nil {
			return nil, err
		}
	} else {
		ids := distinctIDs(cols[driver].ids)
		batches := 0
		for start := 0; start < len(ids); start += t.batch {
			chunk := ids[start:min(start+t.batch, len(ids))]
			var part []T
			q := constrain(base()).Where(cols[driver].name+" IN ?", chunk)
			if err := q.Order("id ASC").Find(&part).Error; err != nil {
				return nil, err
			}
			out = append(out, part...)
			batches++
		}
		slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
		t.log.Debug("batched id filter", "table", table, "column", cols[driver].name, "ids", len(ids), "batches", batches)
	}

	for _, c := range leftover {
		keep := make(map[uint]struct{}, len(c.ids))
		for _, v := range c.ids {
			keep[v] = struct{}{}
		}
		out = query.Filter(out, func(r T) bool {
			_, ok := keep[c.value(r)]
			return ok
		})
	}
	return out, nil
}

// distinctIDs returns a sorted copy of ids without duplicates, so batches
// never overlap.
func distinctIDs(ids []uint) []uint {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
