package controllers

import (
	"errors"
	"strconv"

	"storefront/pkg/resp"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		resp.Unauthorized(c, "authentication required")
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.BadRequest(c, "invalid OTP")
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrInvalidArgument):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		resp.BadRequest(c, "Cart is empty")
	case errors.Is(err, services.ErrAlreadyCancelled):
		resp.BadRequest(c, "Order already cancelled")
	case errors.Is(err, services.ErrCartChanged):
		resp.Conflict(c, "cart changed during checkout, please retry")
	default:
		resp.ServerError(c, err)
	}
}

// paramID reads a positive numeric path parameter; it writes the 400 itself.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
