package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/ratelimit"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/tracing"
	"github.com/aaravmahajanofficial/storefront/internal/view"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/storefront/pkg/storeapi"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const version = "1.0.0"

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	taxRate, err := cfg.Checkout.Rate()
	if err != nil {
		slog.Error("❌ Invalid checkout configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Tracing setup
	shutdownTracing, err := tracing.Setup(ctx, cfg.OTel, version)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient, err := cache.NewRedisClient(ctx, &cfg.RedisConnect)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Redis connection closed")
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.RateConfig)

	storeClient := storeapi.NewClient(storeapi.Config{
		BaseURL:     cfg.StoreAPI.BaseURL,
		Timeout:     cfg.StoreAPI.Timeout,
		MaxFailures: cfg.StoreAPI.BreakerMaxFailures,
		OpenTimeout: cfg.StoreAPI.BreakerOpenTimeout,
	})

	var receipts service.ReceiptSender
	if cfg.SendGrid.Enabled() {
		receipts = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid is not configured, order receipts are disabled")
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		slog.Error("❌ Error parsing templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(storeClient, redisCache, cfg.Cache.DefaultTTL, cfg.Checkout.OffersLimit)
	cartService := service.NewCartService(catalogService, taxRate)
	orderService := service.NewOrderService(storeClient, receipts, taxRate)
	authService := service.NewAuthService(storeClient, limiter)
	adminService := service.NewAdminService(storeClient, catalogService, taxRate)

	productHandler := handlers.NewProductHandler(catalogService, renderer)
	cartHandler := handlers.NewCartHandler(cartService, renderer, taxRate)
	orderHandler := handlers.NewOrderHandler(orderService, renderer, taxRate)
	userHandler := handlers.NewUserHandler(authService, renderer)
	adminHandler := handlers.NewAdminHandler(adminService, renderer)

	sessionStore := session.NewStore(cfg.Session.Capacity, cfg.Session.TTL)
	sessionCodec := session.NewCodec([]byte(cfg.Session.Secret), cfg.Session.TTL)
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore, sessionCodec, cfg.Session.CookieName, cfg.Session.SecureCookie)
	metrics.RegisterActiveSessions(sessionStore.Len)

	healthHandler, err := health.NewHealthHandler(cfg, version, &health.Endpoints{StoreAPI: storeClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storefront initialized", slog.String("env", cfg.Env), slog.String("version", version), slog.String("store_api", cfg.StoreAPI.BaseURL))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /{$}", productHandler.Home())
	routerMux.HandleFunc("GET /products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /cart", cartHandler.ViewCart())
	routerMux.HandleFunc("POST /cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("POST /cart/items/{id}/quantity", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("POST /cart/items/{id}/remove", cartHandler.RemoveItem())
	routerMux.HandleFunc("POST /cart/clear", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /checkout", middleware.RequireLogin(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /orders", middleware.RequireLogin(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /auth/login", userHandler.LoginPage())
	routerMux.HandleFunc("POST /auth/login", userHandler.Login())
	routerMux.HandleFunc("GET /auth/signup", userHandler.SignupPage())
	routerMux.HandleFunc("POST /auth/signup", userHandler.Signup())
	routerMux.HandleFunc("POST /auth/logout", userHandler.Logout())
	routerMux.HandleFunc("GET /admin", middleware.RequireAdmin(adminHandler.Dashboard()))
	routerMux.HandleFunc("POST /admin/products", middleware.RequireAdmin(adminHandler.CreateProduct()))
	routerMux.HandleFunc("POST /admin/orders/{id}/status", middleware.RequireAdmin(adminHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("GET /api/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/cart/items", cartHandler.AddItemJSON())
	routerMux.HandleFunc("PUT /api/cart/items/{id}", cartHandler.UpdateQuantityJSON())
	routerMux.HandleFunc("DELETE /api/cart/items/{id}", cartHandler.RemoveItemJSON())
	routerMux.HandleFunc("/", productHandler.NotFound())

	// Middleware chaining
	var handler http.Handler = metrics.Middleware(routerMux)
	handler = sessionMiddleware.Load(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// probes stay outside the session layer so they never mint sessions
	rootMux := http.NewServeMux()
	rootMux.Handle("GET /healthz", healthHandler.Handler())
	rootMux.Handle("GET /metrics", metrics.Handler())
	rootMux.Handle("/", handler)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           rootMux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
