package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Config holds the HTTP settings that are not use cases.
type Config struct {
	SessionCookieName   string
	SessionCookieSecure bool
	// AdminJWTSecret enables the admin API when set.
	AdminJWTSecret string
}

// Server maps the storefront REST API onto the application use cases.
type Server struct {
	h        Handlers
	payments ports.PaymentGateway
	sessions ports.SessionStore
	contract *Contract
	cfg      Config
	logger   *slog.Logger
}

func NewServer(
	h Handlers,
	payments ports.PaymentGateway,
	sessions ports.SessionStore,
	contract *Contract,
	cfg Config,
	logger *slog.Logger,
) *Server {
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = DefaultSessionCookieName
	}
	return &Server{
		h:        h,
		payments: payments,
		sessions: sessions,
		contract: contract,
		cfg:      cfg,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// Echo builds the router with every middleware and route installed.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(requestMetrics)
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/openapi.json", s.contract.ServeJSON)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))

	s.register(e.Group("/api/v1"))
	return e
}

func (s *Server) register(api *echo.Group) {
	validate := s.contract.ValidateRequests

	products := api.Group("/products", validate)
	products.GET("", s.ListProducts)
	products.GET("/categories", s.GetCategoryTree)
	products.GET("/categories/:slug", s.GetCategory)
	products.GET("/collections", s.ListCollections)
	products.GET("/:slug", s.GetProduct)

	carts := api.Group("/carts", validate, s.withSession)
	carts.GET("", s.GetCart)
	carts.POST("/items", s.AddCartItem)
	carts.PATCH("/items/:id", s.UpdateCartItem)
	carts.DELETE("/items/:id", s.RemoveCartItem)
	// item actions under their older paths
	carts.PATCH("/:id/update", s.UpdateCartItem)
	carts.DELETE("/:id/remove", s.RemoveCartItem)

	orders := api.Group("/orders", s.withSession)
	// the cart is checked before the body so an empty cart wins over field errors
	orders.POST("/checkout", s.Checkout, s.requireCart, validate)
	orders.GET("/:id", s.GetOrder, validate)

	api.POST("/payments/webhooks", s.StripeWebhook, validate)

	facebook := api.Group("/facebook", validate)
	facebook.GET("/catalogue/feed", s.CatalogueFeed)
	conversions := facebook.Group("/conversions", s.withSession)
	conversions.POST("/view-content", s.TrackViewContent)
	conversions.POST("/add-to-cart", s.TrackAddToCart)
	conversions.POST("/initiate-checkout", s.TrackInitiateCheckout)
	conversions.POST("/purchase", s.TrackPurchase)

	api.GET("/common/supported-countries", s.SupportedCountries, validate)

	if s.cfg.AdminJWTSecret == "" {
		s.logger.Warn("ADMIN_JWT_SECRET is empty, admin API disabled")
		return
	}
	admin := api.Group("/admin", validate, adminAuth([]byte(s.cfg.AdminJWTSecret)))
	admin.GET("/orders", s.ListOrders)
	admin.PATCH("/orders/:id/status", s.UpdateOrderStatus)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
