package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avinashrao/platterly-backend/api/controllers"
	"github.com/avinashrao/platterly-backend/api/middleware"
	"github.com/avinashrao/platterly-backend/internal/addresses"
	authsvc "github.com/avinashrao/platterly-backend/internal/auth"
	cartsvc "github.com/avinashrao/platterly-backend/internal/carts"
	checkoutsvc "github.com/avinashrao/platterly-backend/internal/checkout"
	"github.com/avinashrao/platterly-backend/internal/modules"
	"github.com/avinashrao/platterly-backend/internal/products"
	usersvc "github.com/avinashrao/platterly-backend/internal/users"
	"github.com/avinashrao/platterly-backend/internal/vendors"
	"github.com/avinashrao/platterly-backend/pkg/config"
	"github.com/avinashrao/platterly-backend/pkg/db"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	"github.com/avinashrao/platterly-backend/pkg/logger"
	"github.com/avinashrao/platterly-backend/pkg/redis"
)

// Deps bundles everything the router needs. Nil services leave their
// routes answering 500 rather than panicking at startup.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions middleware.SessionChecker

	Auth      authsvc.Service
	Checkout  checkoutsvc.Service
	Carts     cartsvc.Service
	Vendors   vendors.Service
	Products  products.Service
	Modules   modules.Service
	Addresses addresses.Service
	Users     usersvc.Service
}

// NewRouter builds the full HTTP surface: public storefront reads, the
// authenticated customer API, and the admin API.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.Register(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(deps.Auth, logg))
		r.Post("/refresh", controllers.Refresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.Logout(deps.Auth, logg))
	})

	// Public storefront reads.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/modules", controllers.ListModules(deps.Modules, logg, false))
		r.Get("/vendors", controllers.ListVendors(deps.Vendors, logg, true))
		r.Get("/vendors/{id}", controllers.GetVendor(deps.Vendors, logg))
		r.Get("/products", controllers.ListProducts(deps.Products, logg, true))
		r.Get("/products/{id}", controllers.GetProduct(deps.Products, logg))
	})

	// Authenticated customer surface.
	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
		r.Get("/carts", controllers.ListActiveCarts(deps.Carts, logg))

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.ListAddresses(deps.Addresses, logg))
			r.Post("/", controllers.CreateAddress(deps.Addresses, logg))
			r.Patch("/{id}", controllers.UpdateAddress(deps.Addresses, logg))
			r.Delete("/{id}", controllers.DeleteAddress(deps.Addresses, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))

		r.Route("/modules", func(r chi.Router) {
			r.Get("/", controllers.ListModules(deps.Modules, logg, true))
			r.Post("/", controllers.CreateModule(deps.Modules, logg))
			r.Patch("/{id}", controllers.UpdateModule(deps.Modules, logg))
			r.Delete("/{id}", controllers.DeleteModule(deps.Modules, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.ListVendors(deps.Vendors, logg, false))
			r.Post("/", controllers.CreateVendor(deps.Vendors, logg))
			r.Get("/{id}", controllers.GetVendor(deps.Vendors, logg))
			r.Patch("/{id}", controllers.UpdateVendor(deps.Vendors, logg))
			r.Delete("/{id}", controllers.DeleteVendor(deps.Vendors, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg, false))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Products, logg))
			r.Patch("/{id}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{id}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(deps.Users, logg))
			r.Get("/stats", controllers.AdminUserStats(deps.Users, logg))
			r.Get("/{id}", controllers.AdminGetUser(deps.Users, logg))
			r.Patch("/{id}", controllers.AdminUpdateUser(deps.Users, logg))
			r.Delete("/{id}", controllers.AdminDeleteUser(deps.Users, logg))
			r.Post("/{id}/block", controllers.AdminSetUserBlocked(deps.Users, logg, true))
			r.Post("/{id}/unblock", controllers.AdminSetUserBlocked(deps.Users, logg, false))
		})
	})

	return r
}
