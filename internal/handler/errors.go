package handler

import (
	"errors"
	"net/http"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// writeServiceError maps service-layer failures onto the HTTP error
// taxonomy. Anything unrecognized is logged in full and surfaced as a
// generic 500.
func writeServiceError(c echo.Context, err error) error {
	var missing *service.MissingFieldsError

	switch {
	case errors.As(err, &missing):
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{
			Error:         "missing required fields",
			MissingFields: missing.Fields,
		})
	case errors.Is(err, service.ErrUserExists):
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "user already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{Error: "invalid username or password"})
	case errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{Error: "not logged in"})
	case errors.Is(err, service.ErrModelNotFound):
		return c.JSON(http.StatusNotFound, &dto.ErrorResponse{Error: "model file not found in uploads"})
	case errors.Is(err, service.ErrGenerationFailed), errors.Is(err, service.ErrGenerationTimeout):
		logrus.WithError(err).Error("model generation failed")
		return c.JSON(http.StatusInternalServerError, &dto.ErrorResponse{Error: "model generation failed"})
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
		return c.JSON(http.StatusInternalServerError, &dto.ErrorResponse{Error: "internal server error"})
	}
}
