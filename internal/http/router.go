package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tidybooks/tidybooks/internal/http/account"
	"github.com/tidybooks/tidybooks/internal/http/chart"
	"github.com/tidybooks/tidybooks/internal/http/customer"
	"github.com/tidybooks/tidybooks/internal/http/report"
	"github.com/tidybooks/tidybooks/internal/http/tenant"
	"github.com/tidybooks/tidybooks/internal/http/transaction"
)

type RouterConfig struct {
	JWTSecret    string
	ClientOrigin string
}

func New(
	cfg RouterConfig,
	tenantsV1 *tenant.Handler,
	accountsV1 *account.Handler,
	chartV1 *chart.Handler,
	customersV1 *customer.Handler,
	transactionsV1 *transaction.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Tenant-Id"},
		AllowCredentials: true,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(tenantContext(cfg.JWTSecret))

		r.Route("/tenants", tenantsV1.Routes)
		r.Route("/accounts", accountsV1.Routes)
		r.Route("/chart-of-accounts", chartV1.Routes)
		r.Route("/customers", customersV1.Routes)
		r.Route("/transactions", transactionsV1.Routes)
		r.Route("/reports", reportsV1.Routes)
	})

	return router
}
