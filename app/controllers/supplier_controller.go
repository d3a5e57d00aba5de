package controllers

import (
	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
)

type SupplierController struct {
	service *services.SupplierService
}

func NewSupplierController(service *services.SupplierService) *SupplierController {
	return &SupplierController{service: service}
}

func (sc *SupplierController) Index(c *ctx.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	suppliers, pg, err := sc.service.List(c.Context(), page, limit)
	if err != nil {
		c.Fail(err, "Failed to fetch suppliers")
		return
	}
	paginated(c, "suppliers", suppliers, pg)
}

func (sc *SupplierController) Show(c *ctx.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	s, err := sc.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err, "Failed to fetch supplier")
		return
	}
	c.Success(s)
}

func (sc *SupplierController) Store(c *ctx.Context) {
	var input models.SupplierInput
	if !c.BindJSON(&input) {
		return
	}
	s, err := sc.service.Create(c.Context(), input)
	if err != nil {
		c.Fail(err, "Failed to create supplier")
		return
	}
	c.Created(map[string]any{"message": "Supplier created", "supplier": s})
}

func (sc *SupplierController) Update(c *ctx.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var patch models.SupplierPatch
	if !c.BindJSON(&patch) {
		return
	}
	s, err := sc.service.Update(c.Context(), id, patch)
	if err != nil {
		c.Fail(err, "Failed to update supplier")
		return
	}
	c.Success(map[string]any{"message": "Supplier updated", "supplier": s})
}

func (sc *SupplierController) Destroy(c *ctx.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := sc.service.Delete(c.Context(), id); err != nil {
		c.Fail(err, "Failed to delete supplier")
		return
	}
	c.Success(map[string]any{"message": "Supplier deleted"})
}
