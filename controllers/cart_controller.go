package controllers

import (
	"errors"
	"io"

	"storefront/pkg/resp"
	"storefront/services"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.Get(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, cart)
}

// GET /cart/:id
func (h *CartController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	line, err := h.Svc.GetLine(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, line)
}

// POST /cart
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, created, err := h.Svc.Add(c.Request.Context(), utils.CurrentUserID(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	if created {
		resp.Created(c, line)
		return
	}
	resp.OK(c, line)
}

// POST /cart/:id/update_quantity
func (h *CartController) UpdateQty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateQuantityIn
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.UpdateQuantity(c.Request.Context(), utils.CurrentUserID(c), id, req.Action)
	if err != nil {
		writeError(c, err)
		return
	}
	if out.Removed {
		resp.OK(c, gin.H{"removed": true, "message": "Item removed from cart"})
		return
	}
	resp.OK(c, out.Line)
}

// PUT|PATCH /cart/:id
func (h *CartController) SetQty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.SetQuantityIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.SetQuantity(c.Request.Context(), utils.CurrentUserID(c), id, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, line)
}

// DELETE /cart/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.RemoveItem(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Item removed from cart"})
}

// DELETE /cart/clear
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Cart cleared"})
}
