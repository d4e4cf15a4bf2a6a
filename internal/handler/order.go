package handler

import (
	"net/http"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/middleware"
	"print3d-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.Get(middleware.UsernameKey).(string)

	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.orderService.Purchase(ctx, username, &req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
