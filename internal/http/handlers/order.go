package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/http/response"
	"github.com/yungbote/sales-backend/internal/reports"
	"github.com/yungbote/sales-backend/internal/services"
)

// OrderHandler serves orders, their line items and the order reports.
type OrderHandler struct {
	orders  services.OrderService
	reports reports.Service
}

func NewOrderHandler(orders services.OrderService, reports reports.Service) *OrderHandler {
	return &OrderHandler{orders: orders, reports: reports}
}

// GET /api/order
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(dbcFrom(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, orders)
}

// GET /api/order/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, order)
}

// POST /api/order
func (h *OrderHandler) Create(c *gin.Context) {
	var body domain.Order
	if !bindBody(c, &body) {
		return
	}
	created, err := h.orders.Create(dbcFrom(c), &body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/order/%d", created.ID), created)
}

// PUT /api/order/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body domain.Order
	if !bindBody(c, &body) {
		return
	}
	if err := h.orders.Update(dbcFrom(c), id, &body); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/order/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Delete(dbcFrom(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/order/:id/details
func (h *OrderHandler) ListDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.orders.ListDetails(dbcFrom(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, details)
}

// POST /api/order/:id/details
func (h *OrderHandler) AddDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body domain.OrderDetail
	if !bindBody(c, &body) {
		return
	}
	created, err := h.orders.AddDetail(dbcFrom(c), id, &body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/orderDetail/%d", created.ID), created)
}

// GET /api/orderDetail/:id
func (h *OrderHandler) GetDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.orders.GetDetail(dbcFrom(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// PUT /api/orderDetail/:id
func (h *OrderHandler) UpdateDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body domain.OrderDetail
	if !bindBody(c, &body) {
		return
	}
	if err := h.orders.UpdateDetail(dbcFrom(c), id, &body); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/orderDetail/:id
func (h *OrderHandler) DeleteDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.DeleteDetail(dbcFrom(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/order/search/after/:date
func (h *OrderHandler) AfterDate(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	orders, err := h.reports.OrdersAfterDate(c.Request.Context(), date)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, orders)
}

// GET /api/order/details/:id
func (h *OrderHandler) Details(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lines, err := h.reports.OrderDetailsFor(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, lines)
}

// GET /api/order/totalQuantity/:id
func (h *OrderHandler) TotalQuantity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	total, err := h.reports.TotalQuantityForOrder(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, total)
}

// GET /api/order/allDetails
func (h *OrderHandler) AllDetails(c *gin.Context) {
	lines, err := h.reports.AllOrderDetailsWithProduct(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, lines)
}

// GET /api/order/productsByClient/:clientId
func (h *OrderHandler) ProductsByClient(c *gin.Context) {
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	lines, err := h.reports.ProductsSoldToClient(c.Request.Context(), clientID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, lines)
}

// GET /api/order/:id/details-with-products
func (h *OrderHandler) DetailsWithProducts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.reports.OrderWithProducts(c.Request.Context(), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, view)
}
