package controllers

import (
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

func (dc *DashboardController) Alerts(c *ctx.Context) {
	alerts, err := dc.service.Alerts(c.Context())
	if err != nil {
		c.Fail(err, "Failed to fetch alerts")
		return
	}
	c.Success(alerts)
}

func (dc *DashboardController) SupplierDistribution(c *ctx.Context) {
	out, err := dc.service.SupplierDistribution(c.Context())
	if err != nil {
		c.Fail(err, "Failed to fetch supplier distribution")
		return
	}
	c.Success(out)
}

func (dc *DashboardController) CategoryDistribution(c *ctx.Context) {
	out, err := dc.service.CategoryDistribution(c.Context())
	if err != nil {
		c.Fail(err, "Failed to fetch category distribution")
		return
	}
	c.Success(out)
}

// SalesOverTime always returns thirty daily points.
func (dc *DashboardController) SalesOverTime(c *ctx.Context) {
	out, err := dc.service.SalesOverTime(c.Context())
	if err != nil {
		c.Fail(err, "Failed to fetch sales data")
		return
	}
	c.Success(out)
}
