package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
	urls   Locator
}

func NewOrderController(orders *services.OrderService, urls Locator) *OrderController {
	return &OrderController{orders: orders, urls: urls}
}

func (oc *OrderController) Index(c *ctx.Context) {
	orders, page, err := oc.orders.List(c.Context(), listParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.List("Orders fetched successfully", "orders", orders, page)
}

func (oc *OrderController) Store(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.BindEnvelope("orderData", &in) {
		return
	}

	order, err := oc.orders.Create(c.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	oc.urls.locate(c, "orders.show", order.ID)
	c.Payload(http.StatusCreated, "Order placed successfully", "order", order)
}

func (oc *OrderController) Show(c *ctx.Context) {
	order, err := oc.orders.Get(c.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Payload(http.StatusOK, "Order fetched successfully", "order", order)
}

// Dashboard writes the aggregates at the top level of the body.
func (oc *OrderController) Dashboard(c *ctx.Context) {
	d, err := oc.orders.Dashboard(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Map{
		"message":       "Dashboard fetched successfully",
		"totalUsers":    d.TotalUsers,
		"totalProducts": d.TotalProducts,
		"totalOrders":   d.TotalOrders,
		"totalRevenue":  d.TotalRevenue,
	})
}
