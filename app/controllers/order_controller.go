package controllers

import (
	"errors"
	"net/http"

	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/app/services"
	"github.com/rohanwest/pancake/pkg/bind"
	"github.com/rohanwest/pancake/pkg/logger"
	"github.com/rohanwest/pancake/pkg/response"
	"github.com/rohanwest/pancake/pkg/router"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

type createOrderInput struct {
	UserID    string         `json:"userId"    validate:"required"`
	UserEmail string         `json:"userEmail" validate:"required,email"`
	Items     models.RawJSON `json:"items"`
	Total     float64        `json:"total"`
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// Create records a new pending order.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var body createOrderInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Create(body.UserID, body.UserEmail, body.Items, body.Total)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create order failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Created(w, order)
}

// UpdateStatus overwrites an order's status. The admin gate runs before this
// handler; by the time it executes the caller is a verified admin.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusInput
	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.SetStatus(router.Param(r, "id"), body.Status)
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "Order not found")
	case err != nil:
		logger.WithCtx(r.Context()).Error("update order failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		logger.WithCtx(r.Context()).Info("order status updated", "order_id", order.ID, "status", order.Status)
		response.Success(w, order)
	}
}

// List returns every order in creation order.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("list orders failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, orders)
}
