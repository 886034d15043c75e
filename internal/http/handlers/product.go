package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/yungbote/sales-backend/internal/domain"
	"github.com/yungbote/sales-backend/internal/http/response"
	"github.com/yungbote/sales-backend/internal/reports"
	"github.com/yungbote/sales-backend/internal/services"
)

type ProductHandler struct {
	products services.ProductService
	reports  reports.Service
}

func NewProductHandler(products services.ProductService, reports reports.Service) *ProductHandler {
	return &ProductHandler{products: products, reports: reports}
}

// GET /api/product
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(dbcFrom(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/product/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.products.Get(dbcFrom(c), id)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, product)
}

// POST /api/product
func (h *ProductHandler) Create(c *gin.Context) {
	var body domain.Product
	if !bindBody(c, &body) {
		return
	}
	created, err := h.products.Create(dbcFrom(c), &body)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/product/%d", created.ID), created)
}

// PUT /api/product/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var body domain.Product
	if !bindBody(c, &body) {
		return
	}
	if err := h.products.Update(dbcFrom(c), id, &body); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// DELETE /api/product/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(dbcFrom(c), id); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/product/search/price/:value
func (h *ProductHandler) AbovePrice(c *gin.Context) {
	value, err := decimal.NewFromString(strings.TrimSpace(c.Param("value")))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_value", err)
		return
	}
	products, err := h.reports.ProductsAbovePrice(c.Request.Context(), value)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, products)
}

// GET /api/product/mostExpensive
func (h *ProductHandler) MostExpensive(c *gin.Context) {
	product, err := h.reports.MostExpensiveProduct(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, product)
}

// GET /api/product/averagePrice
func (h *ProductHandler) AveragePrice(c *gin.Context) {
	avg, err := h.reports.AveragePrice(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, avg)
}

// GET /api/product/noDescription
func (h *ProductHandler) NoDescription(c *gin.Context) {
	products, err := h.reports.ProductsWithoutDescription(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, products)
}
