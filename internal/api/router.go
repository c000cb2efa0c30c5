package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/api/handler"
	"github.com/boleteria/storefront/internal/api/middleware"
	"github.com/boleteria/storefront/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Sessions    ports.SessionService
	SessionRepo ports.SessionRepository
	Catalog     ports.CatalogService
	Inventory   ports.InventoryService
	Carts       ports.CartService
	Monitor     ports.CartMonitor
	Redis       *redis.Client
	JWTSecret   string
	SessionTTL  time.Duration
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.JWTSecret, deps.SessionTTL)
	eventHandler := handler.NewEventHandler(deps.Catalog, deps.Inventory)
	cartHandler := handler.NewCartHandler(deps.Carts, deps.Monitor)
	healthHandler := handler.NewHealthHandler()

	requireSession := middleware.Session(deps.JWTSecret, deps.SessionRepo)
	optionalSession := middleware.OptionalSession(deps.JWTSecret, deps.SessionRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout, optionalSession)
	e.GET("/auth/me", authHandler.Me, requireSession)

	// --- Public catalog ---
	e.GET("/events", eventHandler.List)
	e.GET("/events/:id", eventHandler.Get)
	e.GET("/events/:id/tickets", eventHandler.TicketStocks)

	// --- Cart (requires a live session) ---
	cart := e.Group("/cart", requireSession)
	cart.GET("", cartHandler.Get)
	cart.GET("/status", cartHandler.Status)
	cart.POST("/items", cartHandler.AddItem)
	cart.POST("/remove", cartHandler.RemoveItem)
	cart.POST("/checkout", cartHandler.Checkout)

	e.GET("/purchases", cartHandler.Purchases, requireSession)

	// --- Probes and metrics ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Redis).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
