package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/sales-backend/internal/data/repos"
	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/sales-backend/internal/pkg/errors"
	"github.com/yungbote/sales-backend/internal/pkg/logger"
)

type OrderService interface {
	List(dbc dbctx.Context) ([]*domain.Order, error)
	ListByClient(dbc dbctx.Context, clientID uint) ([]*domain.Order, error)
	Get(dbc dbctx.Context, id uint) (*domain.Order, error)
	Create(dbc dbctx.Context, order *domain.Order) (*domain.Order, error)
	Update(dbc dbctx.Context, id uint, order *domain.Order) error
	Delete(dbc dbctx.Context, id uint) error

	ListDetails(dbc dbctx.Context, orderID uint) ([]*domain.OrderDetail, error)
	AddDetail(dbc dbctx.Context, orderID uint, detail *domain.OrderDetail) (*domain.OrderDetail, error)
	GetDetail(dbc dbctx.Context, id uint) (*domain.OrderDetail, error)
	UpdateDetail(dbc dbctx.Context, id uint, detail *domain.OrderDetail) error
	DeleteDetail(dbc dbctx.Context, id uint) error
}

type orderService struct {
	db          *gorm.DB
	log         *logger.Logger
	clientRepo  repos.ClientRepo
	productRepo repos.ProductRepo
	orderRepo   repos.OrderRepo
	detailRepo  repos.OrderDetailRepo
	now         func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	productRepo repos.ProductRepo,
	orderRepo repos.OrderRepo,
	detailRepo repos.OrderDetailRepo,
) OrderService {
	return &orderService{
		db:          db,
		log:         baseLog.With("service", "OrderService"),
		clientRepo:  clientRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		detailRepo:  detailRepo,
		now:         time.Now,
	}
}

func (s *orderService) List(dbc dbctx.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(dbc)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) ListByClient(dbc dbctx.Context, clientID uint) ([]*domain.Order, error) {
	const op = "OrderService.ListByClient"
	var orders []*domain.Order
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		ok, err := s.clientRepo.Exists(inner, clientID)
		if err != nil {
			return fmt.Errorf("check client: %w", err)
		}
		if !ok {
			return apperr.NotFound(op, "client %d not found", clientID)
		}
		orders, err = s.orderRepo.ListByClientID(inner, clientID)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		return nil
	})
	return orders, err
}

func (s *orderService) Get(dbc dbctx.Context, id uint) (*domain.Order, error) {
	found, err := s.orderRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperr.NotFound("OrderService.Get", "order %d not found", id)
	}
	return found[0], nil
}

// Create requires an existing client. A zero date is stamped with the current
// time; dates are stored in UTC.
func (s *orderService) Create(dbc dbctx.Context, order *domain.Order) (*domain.Order, error) {
	const op = "OrderService.Create"
	if order == nil {
		return nil, apperr.Invalid(op, "missing order")
	}
	s.normalizeOrder(order)
	var created *domain.Order
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		if order.ID != 0 {
			taken, err := s.orderRepo.Exists(inner, order.ID)
			if err != nil {
				return fmt.Errorf("check order: %w", err)
			}
			if taken {
				return apperr.Conflict(op, "order %d already exists", order.ID)
			}
		}
		if err := s.requireClient(inner, op, order.ClientID); err != nil {
			return err
		}
		rows, err := s.orderRepo.Create(inner, []*domain.Order{order})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		s.log.Warn("create order failed", "error", err, "client_id", order.ClientID)
		return nil, err
	}
	s.log.Info("order created", "order_id", created.ID, "client_id", created.ClientID)
	return created, nil
}

func (s *orderService) Update(dbc dbctx.Context, id uint, order *domain.Order) error {
	const op = "OrderService.Update"
	if order == nil {
		return apperr.Invalid(op, "missing order")
	}
	if order.ID != 0 && order.ID != id {
		return apperr.Invalid(op, "order id %d does not match path id %d", order.ID, id)
	}
	order.ID = id
	s.normalizeOrder(order)
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		ok, err := s.orderRepo.Exists(inner, id)
		if err != nil {
			return fmt.Errorf("check order: %w", err)
		}
		if !ok {
			return apperr.NotFound(op, "order %d not found", id)
		}
		if err := s.requireClient(inner, op, order.ClientID); err != nil {
			return err
		}
		if err := s.orderRepo.Update(inner, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("update order failed", "error", err, "order_id", id)
	}
	return err
}

// Delete removes the order and, through the store cascade, its line items.
func (s *orderService) Delete(dbc dbctx.Context, id uint) error {
	n, err := s.orderRepo.DeleteByIDs(dbc, []uint{id})
	if err != nil {
		s.log.Warn("delete order failed", "error", err, "order_id", id)
		return fmt.Errorf("delete order: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("OrderService.Delete", "order %d not found", id)
	}
	return nil
}

func (s *orderService) ListDetails(dbc dbctx.Context, orderID uint) ([]*domain.OrderDetail, error) {
	const op = "OrderService.ListDetails"
	var details []*domain.OrderDetail
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		ok, err := s.orderRepo.Exists(inner, orderID)
		if err != nil {
			return fmt.Errorf("check order: %w", err)
		}
		if !ok {
			return apperr.NotFound(op, "order %d not found", orderID)
		}
		details, err = s.detailRepo.ListByOrderID(inner, orderID)
		if err != nil {
			return fmt.Errorf("list details: %w", err)
		}
		return nil
	})
	return details, err
}

func (s *orderService) AddDetail(dbc dbctx.Context, orderID uint, detail *domain.OrderDetail) (*domain.OrderDetail, error) {
	const op = "OrderService.AddDetail"
	if err := validateDetail(op, detail); err != nil {
		return nil, err
	}
	if detail.OrderID != 0 && detail.OrderID != orderID {
		return nil, apperr.Invalid(op, "detail order id %d does not match path id %d", detail.OrderID, orderID)
	}
	detail.ID = 0
	detail.OrderID = orderID
	var created *domain.OrderDetail
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		ok, err := s.orderRepo.Exists(inner, orderID)
		if err != nil {
			return fmt.Errorf("check order: %w", err)
		}
		if !ok {
			return apperr.NotFound(op, "order %d not found", orderID)
		}
		if err := s.requireProduct(inner, op, detail.ProductID); err != nil {
			return err
		}
		rows, err := s.detailRepo.Create(inner, []*domain.OrderDetail{detail})
		if err != nil {
			return fmt.Errorf("create detail: %w", err)
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		s.log.Warn("add order detail failed", "error", err, "order_id", orderID)
		return nil, err
	}
	return created, nil
}

func (s *orderService) GetDetail(dbc dbctx.Context, id uint) (*domain.OrderDetail, error) {
	found, err := s.detailRepo.GetByIDs(dbc, []uint{id})
	if err != nil {
		return nil, fmt.Errorf("load detail: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apperr.NotFound("OrderService.GetDetail", "order detail %d not found", id)
	}
	return found[0], nil
}

// UpdateDetail changes product and quantity. A line never moves to another order.
func (s *orderService) UpdateDetail(dbc dbctx.Context, id uint, detail *domain.OrderDetail) error {
	const op = "OrderService.UpdateDetail"
	if err := validateDetail(op, detail); err != nil {
		return err
	}
	if detail.ID != 0 && detail.ID != id {
		return apperr.Invalid(op, "order detail id %d does not match path id %d", detail.ID, id)
	}
	detail.ID = id
	err := inTx(dbc, s.db, func(inner dbctx.Context) error {
		found, err := s.detailRepo.GetByIDs(inner, []uint{id})
		if err != nil {
			return fmt.Errorf("load detail: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return apperr.NotFound(op, "order detail %d not found", id)
		}
		if detail.OrderID != 0 && detail.OrderID != found[0].OrderID {
			return apperr.Invalid(op, "order detail %d belongs to order %d", id, found[0].OrderID)
		}
		detail.OrderID = found[0].OrderID
		if err := s.requireProduct(inner, op, detail.ProductID); err != nil {
			return err
		}
		if err := s.detailRepo.Update(inner, detail); err != nil {
			return fmt.Errorf("update detail: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("update order detail failed", "error", err, "order_detail_id", id)
	}
	return err
}

func (s *orderService) DeleteDetail(dbc dbctx.Context, id uint) error {
	n, err := s.detailRepo.DeleteByIDs(dbc, []uint{id})
	if err != nil {
		s.log.Warn("delete order detail failed", "error", err, "order_detail_id", id)
		return fmt.Errorf("delete detail: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("OrderService.DeleteDetail", "order detail %d not found", id)
	}
	return nil
}

func (s *orderService) normalizeOrder(o *domain.Order) {
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now()
	}
	o.OrderDate = o.OrderDate.UTC()
}

func (s *orderService) requireClient(dbc dbctx.Context, op string, clientID uint) error {
	if clientID == 0 {
		return apperr.Invalid(op, "client id is required")
	}
	ok, err := s.clientRepo.Exists(dbc, clientID)
	if err != nil {
		return fmt.Errorf("check client: %w", err)
	}
	if !ok {
		return apperr.Invalid(op, "client %d does not exist", clientID)
	}
	return nil
}

func (s *orderService) requireProduct(dbc dbctx.Context, op string, productID uint) error {
	if productID == 0 {
		return apperr.Invalid(op, "product id is required")
	}
	ok, err := s.productRepo.Exists(dbc, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return apperr.Invalid(op, "product %d does not exist", productID)
	}
	return nil
}

func validateDetail(op string, d *domain.OrderDetail) error {
	if d == nil {
		return apperr.Invalid(op, "missing order detail")
	}
	if d.Quantity <= 0 {
		return apperr.Invalid(op, "quantity must be positive")
	}
	return nil
}
