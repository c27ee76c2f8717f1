package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/api/handlers"
	custommiddleware "github.com/ndewijer/mutualfund-tracker/internal/api/middleware"
	"github.com/ndewijer/mutualfund-tracker/internal/config"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
)

// Services bundles the services the HTTP API is served from.
type Services struct {
	System   *service.SystemService
	Fund     *service.FundService
	Purchase *service.PurchaseService
	Status   *service.StatusService
	Nav      *service.NavService
	Deposit  *service.DepositService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(services.Fund)
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.CreateFund)

			r.Route("/{fundId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDPrefix("fundId"))
				r.Get("/", fundHandler.Fund)
				r.Delete("/", fundHandler.DeleteFund)
			})
		})

		r.Route("/purchase", func(r chi.Router) {
			purchaseHandler := handlers.NewPurchaseHandler(services.Purchase)
			r.Get("/", purchaseHandler.Purchases)
			r.Post("/", purchaseHandler.CreatePurchase)

			r.With(custommiddleware.ValidateIDPrefix("purchaseId")).
				Delete("/{purchaseId}", purchaseHandler.DeletePurchase)
		})

		statusHandler := handlers.NewStatusHandler(services.Status)
		r.Get("/status", statusHandler.Status)
		r.Get("/distribution", statusHandler.Distribution)

		r.Route("/nav", func(r chi.Router) {
			navHandler := handlers.NewNavHandler(services.Nav)
			r.Get("/", navHandler.Navs)
			r.Post("/update", navHandler.UpdateNavs)
		})

		r.Route("/deposit", func(r chi.Router) {
			depositHandler := handlers.NewDepositHandler(services.Deposit)
			r.Get("/", depositHandler.Deposits)
			r.Post("/", depositHandler.CreateDeposit)
		})
	})

	return r
}
