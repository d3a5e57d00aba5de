package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Index handles GET /api/orders. Each order carries its resolved product.
func (oc *OrderController) Index(c *ctx.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	orders, pg, err := oc.service.List(c.Context(), page, limit)
	if err != nil {
		c.Fail(err, "Failed to fetch orders")
		return
	}
	paginated(c, "orders", orders, pg)
}

func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	view, err := oc.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err, "Failed to fetch order")
		return
	}
	c.Success(view)
}

func (oc *OrderController) Store(c *ctx.Context) {
	caller, ok := c.Principal()
	if !ok {
		c.Error(http.StatusUnauthorized, "No token provided")
		return
	}
	var input models.OrderInput
	if !c.BindJSON(&input) {
		return
	}
	o, err := oc.service.Create(c.Context(), caller, input)
	if err != nil {
		c.Fail(err, "Failed to create order")
		return
	}
	c.Created(map[string]any{"message": "Order created", "order": o})
}

func (oc *OrderController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var patch models.OrderPatch
	if !c.BindJSON(&patch) {
		return
	}
	o, err := oc.service.Update(c.Context(), id, patch)
	if err != nil {
		c.Fail(err, "Failed to update order")
		return
	}
	c.Success(map[string]any{"message": "Order updated", "order": o})
}

func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := oc.service.Delete(c.Context(), id); err != nil {
		c.Fail(err, "Failed to delete order")
		return
	}
	c.Success(map[string]any{"message": "Order deleted"})
}
