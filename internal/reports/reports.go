// Package reports holds the cross-entity read models. Every query runs against
// one query.Source snapshot, recomputes its result from committed rows and
// either returns a populated projection or a not_found error.
package reports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/sales-backend/internal/data/query"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/observability"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

// UnknownClientName stands in for a client id that does not resolve.
const UnknownClientName = "—"

type Service interface {
	SearchClientsByName(ctx context.Context, substring string) ([]domain.Client, error)
	ClientWithMostOrders(ctx context.Context) (domain.Client, error)
	ClientsWhoPurchasedProduct(ctx context.Context, productID uint) ([]ClientName, error)
	ClientsWithOrders(ctx context.Context) ([]ClientOrders, error)
	TotalProductsByClient(ctx context.Context) ([]ClientProductCount, error)
	SalesByClient(ctx context.Context) ([]ClientSales, error)

	OrdersAfterDate(ctx context.Context, date time.Time) ([]domain.Order, error)
	OrderDetailsFor(ctx context.Context, orderID uint) ([]ProductQuantity, error)
	TotalQuantityForOrder(ctx context.Context, orderID uint) (int, error)
	AllOrderDetailsWithProduct(ctx context.Context) ([]OrderLine, error)
	ProductsSoldToClient(ctx context.Context, clientID uint) ([]ProductQuantity, error)
	OrderWithProducts(ctx context.Context, orderID uint) (OrderWithProducts, error)

	ProductsAbovePrice(ctx context.Context, value decimal.Decimal) ([]domain.Product, error)
	MostExpensiveProduct(ctx context.Context) (domain.Product, error)
	AveragePrice(ctx context.Context) (decimal.Decimal, error)
	ProductsWithoutDescription(ctx context.Context) ([]domain.Product, error)
}

type service struct {
	src     query.Source
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// New wires the report set to a source. metrics may be nil.
func New(src query.Source, baseLog *logger.Logger, metrics *observability.Metrics) Service {
	return &service{
		src:     src,
		log:     baseLog.With("service", "ReportService"),
		metrics: metrics,
		tracer:  observability.Tracer("github.com/yungbote/sales-backend/internal/reports"),
	}
}

// view runs fn in one snapshot under a span, and records the outcome.
func (s *service) view(ctx context.Context, name string, fn func(query.Tables) error) error {
	ctx, span := s.tracer.Start(ctx, "reports."+name, trace.WithAttributes(attribute.String("report.query", name)))
	defer span.End()

	start := time.Now()
	err := s.src.View(ctx, fn)
	outcome := observability.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrNotFound):
		outcome = observability.OutcomeNotFound
		span.SetAttributes(attribute.Bool("report.empty", true))
	default:
		outcome = observability.OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("report query failed", "query", name, "error", err)
	}
	s.metrics.ObserveReport(name, outcome, time.Since(start))
	return err
}

func productNames(products []domain.Product) map[uint]string {
	out := make(map[uint]string, len(products))
	for _, p := range products {
		out[p.ID] = p.Name
	}
	return out
}

func productIDs(details []domain.OrderDetail) []uint {
	return query.Pluck(details, func(d domain.OrderDetail) uint { return d.ProductID })
}

func orderIDs(orders []domain.Order) []uint {
	return query.Pluck(orders, func(o domain.Order) uint { return o.ID })
}
