package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/http/response"
	"github.com/yungbote/sales-backend/internal/reports"
	"github.com/yungbote/sales-backend/internal/services"
)

type ClientHandler struct {
	clients services.ClientService
	orders  services.OrderService
	reports reports.Service
}

func NewClientHandler(clients services.ClientService, orders services.OrderService, reports reports.Service) *ClientHandler {
	return &ClientHandler{clients: clients, orders: orders, reports: reports}
}

// GET /api/client
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List(dbcFrom(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, clients)
}

// GET /api/client/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, client)
}

// POST /api/client
func (h *ClientHandler) Create(c *gin.Context) {
	var body domain.Client
	if !bindBody(c, &body) {
		return
	}
	created, err := h.clients.Create(dbcFrom(c), &body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/client/%d", created.ID), created)
}

// PUT /api/client/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body domain.Client
	if !bindBody(c, &body) {
		return
	}
	if err := h.clients.Update(dbcFrom(c), id, &body); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/client/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(dbcFrom(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/client/:id/orders
func (h *ClientHandler) Orders(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	orders, err := h.orders.ListByClient(dbcFrom(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, orders)
}

// GET /api/client/search/:name
func (h *ClientHandler) SearchByName(c *gin.Context) {
	clients, err := h.reports.SearchClientsByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, clients)
}

// GET /api/client/mostOrders
func (h *ClientHandler) MostOrders(c *gin.Context) {
	client, err := h.reports.ClientWithMostOrders(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, client)
}

// GET /api/client/purchasedProduct/:productId
func (h *ClientHandler) PurchasedProduct(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	names, err := h.reports.ClientsWhoPurchasedProduct(c.Request.Context(), productID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, names)
}

// GET /api/client/readonly/clients-with-orders
func (h *ClientHandler) ClientsWithOrders(c *gin.Context) {
	rows, err := h.reports.ClientsWithOrders(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/client/totalProductsByClient
func (h *ClientHandler) TotalProductsByClient(c *gin.Context) {
	rows, err := h.reports.TotalProductsByClient(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/client/sales/by-client
func (h *ClientHandler) SalesByClient(c *gin.Context) {
	rows, err := h.reports.SalesByClient(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rows)
}
