package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/0xF5T9/vyfood-backend-sub000/internal/apperr"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/model"
	"github.com/0xF5T9/vyfood-backend-sub000/internal/service"
)

type OrderHTTP struct {
	S service.OrderService
}

func NewOrderHTTP(s service.OrderService) *OrderHTTP { return &OrderHTTP{S: s} }

func (h *OrderHTTP) Create(c *gin.Context) {
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	order, err := h.S.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "order placed", order)
}

func (h *OrderHTTP) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	itemPerPage := queryInt(c, "itemPerPage", 0)

	orders, meta, err := h.S.List(page, itemPerPage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", gin.H{"orders": orders, "meta": meta})
}

func (h *OrderHTTP) Get(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := h.S.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "", order)
}

func (h *OrderHTTP) Update(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var in struct {
		Status *model.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.Invalid, "invalid request body", err))
		return
	}

	if err := h.S.Update(id, in.Status); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "order updated", nil)
}

func (h *OrderHTTP) Delete(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.S.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "order deleted", nil)
}

func (h *OrderHTTP) RestoreProductQuantity(c *gin.Context) {
	id, err := orderIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.S.RestoreProductQuantity(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "product quantities restored", nil)
}

func orderIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.Invalid, "invalid order id")
	}
	return uint(id), nil
}
