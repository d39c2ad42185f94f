package controllers

import (
	"strconv"
	"strings"

	"storefront/pkg/resp"
	"storefront/repository"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductController struct{ Svc *services.ProductService }

func NewProductController(s *services.ProductService) *ProductController {
	return &ProductController{Svc: s}
}

// GET /products?category=&sold=&is_sale=&min_price=&max_price=&search=
func (h *ProductController) List(c *gin.Context) {
	f, err := productFilterFromQuery(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	items, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /products/most_bought?limit=
func (h *ProductController) MostBought(c *gin.Context) {
	limit := services.DefaultMostBoughtLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			resp.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	items, err := h.Svc.MostBought(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /products/:id
func (h *ProductController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, p)
}

// POST /products (staff)
func (h *ProductController) Create(c *gin.Context) {
	var req services.NewProductIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /products/:id (staff)
func (h *ProductController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ProductPatchIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, p)
}

// productFilterFromQuery mirrors the storefront's query parameters.
// sold / is_sale are true only for "true" (any case); anything else filters for false.
func productFilterFromQuery(c *gin.Context) (repository.ProductFilter, error) {
	f := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v, ok := c.GetQuery("sold"); ok {
		b := strings.EqualFold(v, "true")
		f.Sold = &b
	}
	if v, ok := c.GetQuery("is_sale"); ok {
		b := strings.EqualFold(v, "true")
		f.IsSale = &b
	}
	if v := c.Query("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errInvalidQuery("min_price")
		}
		f.MinPrice = &d
	}
	if v := c.Query("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errInvalidQuery("max_price")
		}
		f.MaxPrice = &d
	}
	return f, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string { return "invalid " + string(e) }
