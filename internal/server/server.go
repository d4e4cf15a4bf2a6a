package server

import (
	"net/http"
	"print3d-shop/internal/config"
	"print3d-shop/internal/handler"
	appmw "print3d-shop/internal/middleware"
	"print3d-shop/internal/service"
	"print3d-shop/internal/storage"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo              *echo.Echo
	authHandler       *handler.AuthHandler
	libraryHandler    *handler.LibraryHandler
	orderHandler      *handler.OrderHandler
	generationHandler *handler.GenerationHandler
	requireAuth       echo.MiddlewareFunc
	files             *storage.FileStore
}

func NewServer(
	cfg *config.Config,
	files *storage.FileStore,
	authService service.AuthService,
	libraryService service.LibraryService,
	orderService service.OrderService,
	generationService service.GenerationService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	s := &Server{
		echo:              e,
		authHandler:       handler.NewAuthHandler(authService),
		libraryHandler:    handler.NewLibraryHandler(libraryService),
		orderHandler:      handler.NewOrderHandler(orderService),
		generationHandler: handler.NewGenerationHandler(generationService),
		requireAuth:       appmw.RequireAuth(authService),
		files:             files,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	s.echo.POST("/register", s.authHandler.Register)
	s.echo.POST("/login", s.authHandler.Login)
	s.echo.POST("/logout", s.authHandler.Logout)
	s.echo.GET("/me", s.authHandler.Me)

	// -------- session-gated --------
	s.echo.POST("/upload", s.libraryHandler.Upload, s.requireAuth)
	s.echo.GET("/my-uploads", s.libraryHandler.ListUploads, s.requireAuth)
	s.echo.POST("/purchase", s.orderHandler.Purchase, s.requireAuth)
	s.echo.POST("/generate-3d-model", s.generationHandler.GenerateModel, s.requireAuth)

	// -------- static model files --------
	s.echo.Static("/uploads", s.files.UploadDir())
	s.echo.Static("/purchases", s.files.PurchaseDir())
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
