package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	accountStore "github.com/lux2ube/Customer-service-sub002/internal/account/store"
	"github.com/lux2ube/Customer-service-sub002/internal/client"
	clientStore "github.com/lux2ube/Customer-service-sub002/internal/client/store"
	"github.com/lux2ube/Customer-service-sub002/internal/config"
	"github.com/lux2ube/Customer-service-sub002/internal/database"
	appHttp "github.com/lux2ube/Customer-service-sub002/internal/http"
	accountHandler "github.com/lux2ube/Customer-service-sub002/internal/http/account"
	clientHandler "github.com/lux2ube/Customer-service-sub002/internal/http/client"
	ingestHandler "github.com/lux2ube/Customer-service-sub002/internal/http/ingest"
	ledgerHandler "github.com/lux2ube/Customer-service-sub002/internal/http/ledger"
	periodHandler "github.com/lux2ube/Customer-service-sub002/internal/http/period"
	recordHandler "github.com/lux2ube/Customer-service-sub002/internal/http/record"
	"github.com/lux2ube/Customer-service-sub002/internal/ingest"
	ingestStore "github.com/lux2ube/Customer-service-sub002/internal/ingest/store"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
	ledgerStore "github.com/lux2ube/Customer-service-sub002/internal/ledger/store"
	"github.com/lux2ube/Customer-service-sub002/internal/matching"
	"github.com/lux2ube/Customer-service-sub002/internal/obs"
	"github.com/lux2ube/Customer-service-sub002/internal/period"
	periodStore "github.com/lux2ube/Customer-service-sub002/internal/period/store"
	"github.com/lux2ube/Customer-service-sub002/internal/reconcile"
	reconcileStore "github.com/lux2ube/Customer-service-sub002/internal/reconcile/store"
	"github.com/lux2ube/Customer-service-sub002/internal/record"
	recordStore "github.com/lux2ube/Customer-service-sub002/internal/record/store"
	"github.com/lux2ube/Customer-service-sub002/internal/sms"
)

// clientDirectory narrows the client service to what reconciliation needs.
type clientDirectory struct {
	svc *client.Service
}

func (d clientDirectory) Get(ctx context.Context, id int64) (*reconcile.Client, error) {
	c, err := d.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &reconcile.Client{ID: c.ID, Name: c.Name, AccountID: c.AccountID}, nil
}

func (d clientDirectory) LinkAccount(ctx context.Context, id int64, accountID string) error {
	return d.svc.LinkAccount(ctx, id, accountID)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	obs.Init()

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	var (
		accountService = account.NewService(accountStore.New(db))
		ledgerService  = ledger.NewService(ledgerStore.New(db), accountService)
		clientService  = client.NewService(clientStore.New(db))
		recordService  = record.NewService(recordStore.New(db))
		periodService  = period.NewService(periodStore.New(db), accountService, ledgerService)
		matcherService = matching.NewService(clientService)
	)

	if err := accountService.EnsureChart(ctx); err != nil {
		slog.Error("failed to seed chart of accounts", "error", err)
		os.Exit(1)
	}

	reconcileService := reconcile.NewService(
		reconcileStore.New(db),
		accountService,
		ledgerService,
		recordService,
		clientDirectory{svc: clientService},
		obs.RecordNotifier{},
	)

	ingestService := ingest.NewService(
		sms.NewParser(sms.DefaultRules),
		recordService,
		ledgerService,
		matcherService,
		reconcileService,
		ingestStore.New(db),
		cfg.Rates(),
	)

	var (
		accountH = accountHandler.NewHandler(accountService, ledgerService, periodService)
		ledgerH  = ledgerHandler.NewHandler(ledgerService)
		recordH  = recordHandler.NewHandler(recordService, reconcileService)
		clientH  = clientHandler.NewHandler(clientService)
		ingestH  = ingestHandler.NewHandler(ingestService)
		periodH  = periodHandler.NewHandler(periodService)
	)

	router := appHttp.New(accountH, ledgerH, recordH, clientH, ingestH, periodH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
