package controllers

import (
	"errors"
	"io"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders checkout ทั้งตะกร้า; body is optional, payment_mode defaults to COD
func (oc *OrderController) Create(c *gin.Context) {
	var req services.PlaceOrderIn
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		resp.BadRequest(c, err.Error())
		return
	}
	orders, err := oc.Svc.Place(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, orders)
}

// GET /orders
func (oc *OrderController) ListForMe(c *gin.Context) {
	items, err := oc.Svc.List(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /orders/:id (เฉพาะเจ้าของออเดอร์)
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Svc.Get(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /orders/:id/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Svc.Cancel(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, o)
}
