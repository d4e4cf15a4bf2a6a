package handler

import (
	"net/http"
	"print3d-shop/internal/dto"
	"print3d-shop/internal/middleware"
	"print3d-shop/internal/service"

	"github.com/labstack/echo/v4"
)

type LibraryHandler struct {
	libraryService service.LibraryService
}

func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

func (h *LibraryHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.Get(middleware.UsernameKey).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, &dto.ErrorResponse{Error: "no file uploaded"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return writeServiceError(c, err)
	}
	defer src.Close()

	info, err := h.libraryService.SaveUpload(ctx, username, fileHeader.Filename, src)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.UploadResponse{Success: true, URL: info.URL})
}

func (h *LibraryHandler) ListUploads(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.Get(middleware.UsernameKey).(string)

	files, err := h.libraryService.ListUploads(ctx, username)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, &dto.ListUploadsResponse{Success: true, Files: files})
}
