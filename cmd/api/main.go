package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/tidybooks/tidybooks/internal/config"
	"github.com/tidybooks/tidybooks/internal/customer"
	customerStore "github.com/tidybooks/tidybooks/internal/customer/store"
	"github.com/tidybooks/tidybooks/internal/database"
	tidyHttp "github.com/tidybooks/tidybooks/internal/http"
	accountHandler "github.com/tidybooks/tidybooks/internal/http/account"
	chartHandler "github.com/tidybooks/tidybooks/internal/http/chart"
	customerHandler "github.com/tidybooks/tidybooks/internal/http/customer"
	reportHandler "github.com/tidybooks/tidybooks/internal/http/report"
	tenantHandler "github.com/tidybooks/tidybooks/internal/http/tenant"
	txHandler "github.com/tidybooks/tidybooks/internal/http/transaction"
	"github.com/tidybooks/tidybooks/internal/ledger"
	ledgerStore "github.com/tidybooks/tidybooks/internal/ledger/store"
	"github.com/tidybooks/tidybooks/internal/tenant"
	tenantStore "github.com/tidybooks/tidybooks/internal/tenant/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		customerService = customer.NewService(customerStore.New(db))
		tenantService   = tenant.NewService(tenantStore.New(db))
	)

	var (
		tenantsH      = tenantHandler.NewHandler(tenantService)
		accountsH     = accountHandler.NewHandler(ledgerService)
		chartH        = chartHandler.NewHandler(ledgerService)
		customersH    = customerHandler.NewHandler(customerService)
		transactionsH = txHandler.NewHandler(ledgerService)
		reportsH      = reportHandler.NewHandler(ledgerService)
	)

	router := tidyHttp.New(tidyHttp.RouterConfig{
		JWTSecret:    cfg.Auth.JWTSecret,
		ClientOrigin: cfg.CORS.Origin,
	}, tenantsH, accountsH, chartH, customersH, transactionsH, reportsH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
