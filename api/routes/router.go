package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sathishnaik786/Zekto/api/controllers"
	"github.com/Sathishnaik786/Zekto/api/middleware"
	adminsvc "github.com/Sathishnaik786/Zekto/internal/admin"
	"github.com/Sathishnaik786/Zekto/internal/auth"
	"github.com/Sathishnaik786/Zekto/internal/customers"
	deliverysvc "github.com/Sathishnaik786/Zekto/internal/delivery"
	"github.com/Sathishnaik786/Zekto/internal/merchants"
	"github.com/Sathishnaik786/Zekto/internal/orders"
	"github.com/Sathishnaik786/Zekto/internal/products"
	"github.com/Sathishnaik786/Zekto/internal/stores"
	"github.com/Sathishnaik786/Zekto/pkg/auth/session"
	"github.com/Sathishnaik786/Zekto/pkg/config"
	"github.com/Sathishnaik786/Zekto/pkg/db"
	"github.com/Sathishnaik786/Zekto/pkg/enums"
	"github.com/Sathishnaik786/Zekto/pkg/logger"
	"github.com/Sathishnaik786/Zekto/pkg/metrics"
	"github.com/Sathishnaik786/Zekto/pkg/redis"
)

// SessionRotator is the session-manager surface needed by the refresh and
// logout endpoints.
type SessionRotator interface {
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	rotator SessionRotator,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService auth.Service,
	customerService customers.Service,
	storeService stores.Service,
	productService products.Service,
	orderService orders.Service,
	merchantService merchants.Service,
	deliveryService deliverysvc.Service,
	adminService adminsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp_send",
		cfg.RateLimit.OTPWindow,
		cfg.RateLimit.OTPIPLimit,
		cfg.RateLimit.OTPPhoneLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, redisClient, logg))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(otpPolicy, redisClient, logg)).Post("/otp/send", controllers.SendOTP(authService, logg))
		r.Post("/otp/verify", controllers.VerifyOTP(authService, logg))
		r.Post("/guest", controllers.GuestLogin(authService, logg))
		r.Post("/refresh", controllers.RefreshToken(rotator, cfg.JWT, logg))
		r.Post("/logout", controllers.Logout(rotator, cfg.JWT, logg))
	})

	r.Route("/api/v1/stores", func(r chi.Router) {
		r.Get("/", controllers.BrowseStores(storeService, logg))
		r.Get("/nearby", controllers.NearbyStores(storeService, logg))
		r.Get("/{storeID}", controllers.GetStore(storeService, logg))
	})
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.BrowseProducts(productService, logg))
		r.Get("/{productID}", controllers.GetProduct(productService, logg))
	})

	// Merchant registration is the one unauthenticated write; it still goes
	// through the idempotency guard.
	r.With(middleware.Idempotency(redisClient, logg)).
		Post("/api/v1/merchants", controllers.CreateMerchant(merchantService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/api/v1/customers/me", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleCustomer))
			r.Get("/", controllers.CustomerProfile(customerService, logg))
			r.Patch("/", controllers.UpdateCustomerProfile(customerService, logg))
			r.Post("/favorites/{storeID}", controllers.AddFavoriteStore(customerService, logg))
			r.Delete("/favorites/{storeID}", controllers.RemoveFavoriteStore(customerService, logg))
			r.Post("/addresses", controllers.AddSavedAddress(customerService, logg))
			r.Delete("/addresses/{index}", controllers.RemoveSavedAddress(customerService, logg))
			r.Get("/orders", controllers.CustomerOrders(orderService, logg))
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, enums.UserRoleCustomer)).
				Post("/", controllers.CreateOrder(orderService, logg))
			r.Get("/number/{orderNumber}", controllers.GetOrderByNumber(orderService, logg))
			r.Get("/{orderID}", controllers.GetOrder(orderService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleMerchant, enums.UserRoleDelivery, enums.UserRoleAdmin)).
				Patch("/{orderID}/status", controllers.SetOrderStatus(orderService, logg))
			r.Post("/{orderID}/cancel", controllers.CancelOrder(orderService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleCustomer)).
				Post("/{orderID}/rating", controllers.RateOrder(orderService, logg))
		})

		r.Route("/api/v1/merchants/me", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleMerchant))
			r.Get("/", controllers.MerchantProfile(merchantService, logg))
			r.Patch("/", controllers.UpdateMerchantProfile(merchantService, logg))
			r.Get("/earnings", controllers.MerchantEarnings(merchantService, logg))
			r.Route("/stores", func(r chi.Router) {
				r.Get("/", controllers.MerchantStores(storeService, logg))
				r.Post("/", controllers.CreateMerchantStore(storeService, logg))
				r.Patch("/{storeID}", controllers.UpdateMerchantStore(storeService, logg))
				r.Get("/{storeID}/orders", controllers.MerchantStoreOrders(storeService, orderService, logg))
				r.Post("/{storeID}/products", controllers.CreateStoreProduct(productService, logg))
				r.Patch("/{storeID}/products/{productID}", controllers.UpdateStoreProduct(productService, logg))
				r.Delete("/{storeID}/products/{productID}", controllers.DeleteStoreProduct(productService, logg))
			})
		})

		r.Route("/api/v1/delivery/me", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleDelivery))
			r.Get("/", controllers.DeliveryProfile(deliveryService, logg))
			r.Patch("/", controllers.UpdateDeliveryProfile(deliveryService, logg))
			r.Get("/tasks/active", controllers.ActiveDeliveryTasks(deliveryService, logg))
			r.Get("/tasks/completed", controllers.CompletedDeliveryTasks(deliveryService, logg))
			r.Patch("/tasks/{orderID}/status", controllers.UpdateDeliveryTaskStatus(deliveryService, logg))
			r.Get("/earnings", controllers.DeliveryEarnings(deliveryService, logg))
			r.Patch("/location", controllers.UpdateDeliveryLocation(deliveryService, logg))
			r.Patch("/availability", controllers.SetDeliveryAvailability(deliveryService, logg))
		})

		r.Route("/api/v1/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))
			r.Get("/stats", controllers.AdminStats(adminService, logg))
			r.Get("/activity", controllers.AdminRecentActivity(adminService, logg))
			r.Get("/users", controllers.AdminListUsers(adminService, logg))
			r.Patch("/users/{userID}/status", controllers.AdminSetUserStatus(adminService, logg))
			r.Patch("/stores/{storeID}/status", controllers.AdminSetStoreStatus(adminService, logg))
			r.Get("/orders", controllers.AdminListOrders(orderService, logg))
		})
	})

	return r
}
