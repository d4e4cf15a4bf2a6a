package handler

import (
	"net/http"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/middleware"
	"print3d-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type GenerationHandler struct {
	generationService service.GenerationService
}

func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
	}
}

func (h *GenerationHandler) GenerateModel(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.Get(middleware.UsernameKey).(string)

	var req dto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.TextPrompt == "" {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "text prompt required"})
	}

	info, err := h.generationService.GenerateModel(ctx, username, req.TextPrompt)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.GenerateResponse{
		Success:  true,
		URL:      info.URL,
		Filename: info.Filename,
	})
}
