package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/benbjohnson/clock"
	"github.com/chris/wallet-transfer-policy/pkg/api"
	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/config"
	custody "github.com/chris/wallet-transfer-policy/pkg/custody/memory"
	"github.com/chris/wallet-transfer-policy/pkg/events"
	"github.com/chris/wallet-transfer-policy/pkg/handlers"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/accounts"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/calls"
	eventshandler "github.com/chris/wallet-transfer-policy/pkg/handlers/events"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/ledger"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/limits"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/prices"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/transfers"
	wshandler "github.com/chris/wallet-transfer-policy/pkg/handlers/websockets"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/whitelist"
	"github.com/chris/wallet-transfer-policy/pkg/keeper"
	"github.com/chris/wallet-transfer-policy/pkg/middleware"
	"github.com/chris/wallet-transfer-policy/pkg/oracle"
	"github.com/chris/wallet-transfer-policy/pkg/pending"
	"github.com/chris/wallet-transfer-policy/pkg/policy"
	"github.com/chris/wallet-transfer-policy/pkg/scheduler"
	"github.com/chris/wallet-transfer-policy/pkg/storage"
	dydbstore "github.com/chris/wallet-transfer-policy/pkg/storage/dynamodb"
	"github.com/chris/wallet-transfer-policy/pkg/storage/memory"
	"github.com/chris/wallet-transfer-policy/pkg/websockets"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// backend is everything the service needs from a storage implementation.
type backend interface {
	policy.Store
	storage.Storage
	pending.Scanner
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store backend
	var sched scheduler.CronScheduler
	if cfg.StorageBackend == config.BackendDynamoDB || cfg.SQSQueueURL != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		if cfg.StorageBackend == config.BackendDynamoDB {
			store = dydbstore.New(awsdynamodb.NewFromConfig(awsCfg), cfg.Tables)
		}
		if cfg.SQSQueueURL != "" {
			sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
		}
	}
	if store == nil {
		store = memory.New()
	}

	var priceCache oracle.Cache = oracle.NewMemoryCache()
	if cfg.RedisAddr != "" {
		priceCache = oracle.NewRedisCache(oracle.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.PriceCacheKey)
	}

	ledgerState := custody.NewLedger()
	if cfg.Policy.WrappedNative != (common.Address{}) {
		ledgerState.Deploy(cfg.Policy.WrappedNative, custody.WrappedNative{})
	}

	hub := websockets.NewHub()
	clk := clock.New()
	directory := auth.StoreDirectory{Store: store}
	engine := policy.New(cfg.Policy, store, priceCache, ledgerState, directory,
		policy.WithPublisher(events.Multi{events.Journal{Store: store}, hub}),
		policy.WithClock(clk),
		policy.WithLogger(logger),
	)

	if sched == nil {
		logger.Info("no queue configured, sweeping pending transfers in process", "interval", cfg.SweepInterval)
		k := keeper.New(keeper.EngineExecutor{Engine: engine}, nil, cfg.Policy.SecurityWindow)
		go k.Run(ctx, store, cfg.SweepInterval)
	}

	handler := &handlers.ApiHandler{
		AccountsHandler:  accounts.NewAccountsHandler(store, clk),
		LimitsHandler:    limits.NewLimitsHandler(engine, clk),
		WhitelistHandler: whitelist.NewWhitelistHandler(engine, clk),
		TransfersHandler: transfers.NewTransfersHandler(engine, sched, clk, cfg.Policy.SecurityWindow),
		CallsHandler:     calls.NewCallsHandler(engine),
		EventsHandler:    eventshandler.NewEventsHandler(store),
		LedgerHandler:    ledger.NewLedgerHandler(ledgerState),
		PricesHandler:    prices.NewPricesHandler(priceCache),
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger))
	if cfg.RelayJWTSecret != "" {
		router.Use(middleware.RelayAuth(&middleware.RelayValidator{
			Secret: []byte(cfg.RelayJWTSecret),
			Issuer: cfg.RelayJWTIssuer,
		}))
	} else {
		logger.Warn("RELAY_JWT_SECRET not set, all requests are anonymous")
	}
	router.Handle("/ws", wshandler.NewHandler(hub, auth.DirectoryAuthorizer{Directory: directory}))
	api.HandlerFromMux(handler, router)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(router, "policy-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.HTTPPort, "backend", cfg.StorageBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
