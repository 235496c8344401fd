package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/avinashrao/platterly-backend/api/routes"
	"github.com/avinashrao/platterly-backend/internal/addresses"
	authsvc "github.com/avinashrao/platterly-backend/internal/auth"
	cartsvc "github.com/avinashrao/platterly-backend/internal/carts"
	checkoutsvc "github.com/avinashrao/platterly-backend/internal/checkout"
	"github.com/avinashrao/platterly-backend/internal/modules"
	"github.com/avinashrao/platterly-backend/internal/products"
	usersvc "github.com/avinashrao/platterly-backend/internal/users"
	"github.com/avinashrao/platterly-backend/internal/vendors"
	"github.com/avinashrao/platterly-backend/pkg/auth/session"
	"github.com/avinashrao/platterly-backend/pkg/config"
	"github.com/avinashrao/platterly-backend/pkg/db"
	"github.com/avinashrao/platterly-backend/pkg/logger"
	"github.com/avinashrao/platterly-backend/pkg/migrate"
	"github.com/avinashrao/platterly-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	userRepo := usersvc.NewRepository(gormDB)
	vendorRepo := vendors.NewRepository(gormDB)
	productRepo := products.NewRepository(gormDB)
	moduleRepo := modules.NewRepository(gormDB)

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(vendorRepo, productRepo, cartsvc.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendorRepo, moduleRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(productRepo, vendorRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	moduleService, err := modules.NewService(moduleRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create module service", err)
		os.Exit(1)
	}

	addressService, err := addresses.NewService(addresses.NewRepository(gormDB), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	userService, err := usersvc.NewService(userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Sessions:  sessionManager,
			Auth:      authService,
			Checkout:  checkoutService,
			Carts:     cartService,
			Vendors:   vendorService,
			Products:  productService,
			Modules:   moduleService,
			Addresses: addressService,
			Users:     userService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
