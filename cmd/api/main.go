package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agent-settlement/config"
	httpHandler "agent-settlement/internal/adapter/http/handler"
	memStorage "agent-settlement/internal/adapter/storage/memory"
	pgStorage "agent-settlement/internal/adapter/storage/postgres"
	redisStorage "agent-settlement/internal/adapter/storage/redis"
	"agent-settlement/internal/adapter/userwallet"
	"agent-settlement/internal/core/ports"
	"agent-settlement/internal/service"
	"agent-settlement/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting agent settlement service")

	ctx := context.Background()

	// Storage backends: PostgreSQL + Redis when configured, otherwise the
	// in-process store for single-node and development runs.
	var (
		walletRepo     ports.WalletRepository
		tokenRepo      ports.TokenRepository
		txnRepo        ports.TransactionRepository
		transactor     ports.DBTransactor
		nonceStore     ports.NonceStore
		idempCache     ports.IdempotencyCache
		healthCheckers []ports.HealthChecker
	)

	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		walletRepo = pgStorage.NewWalletRepo(pool)
		tokenRepo = pgStorage.NewTokenRepo(pool)
		txnRepo = pgStorage.NewTransactionRepo(pool)
		transactor = pgStorage.NewTransactor(pool)
		nonceStore = redisStorage.NewNonceStore(rdb)
		idempCache = redisStorage.NewIdempotencyCache(rdb)
		healthCheckers = []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
		}
	} else {
		log.Info().Msg("Database disabled, using in-process storage")
		store := memStorage.NewStore()
		walletRepo = store.Wallets()
		tokenRepo = store.Tokens()
		txnRepo = store.Transactions()
		transactor = store.Transactor()
		nonceStore = memStorage.NewNonceStore()
		idempCache = memStorage.NewIdempotencyCache()
	}

	// Signing keypairs, one per principal role
	merchantKey, err := service.NewKeyManager()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate merchant keypair")
	}
	userKey, err := service.NewKeyManager()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate user keypair")
	}

	keyRing := service.NewKeyRing()
	keyRing.Register(merchantKey)
	keyRing.Register(userKey)
	log.Info().
		Str("merchant_kid", merchantKey.KeyID()).
		Str("user_kid", userKey.KeyID()).
		Msg("Signing keypairs generated")

	// Core services
	codec := service.NewMandateCodec()
	hasher := service.NewCanonicalHasher()
	builder := service.NewMandateBuilder(codec, hasher, merchantKey, userKey, cfg.Keys.MerchantName, log)
	validator := service.NewMandateValidator(codec, hasher, keyRing, nonceStore, log)
	apiKeyVerifier := service.NewArgon2KeyVerifier()

	// Ledger and settlement
	ledger := service.NewLedgerService(walletRepo, tokenRepo, txnRepo, transactor, log)
	personalClient := userwallet.NewClient(cfg.UserAgent, service.NewRequestSigner(userKey), log)
	settlementSvc := service.NewSettlementService(ledger, validator, personalClient, idempCache, cfg.Keys.MerchantName, log)

	// Seed the store-owned ledger account for fresh in-process runs
	if !cfg.Database.Enabled && cfg.Wallet.OwnerID != "" {
		account, err := ledger.CreateAccount(ctx, cfg.Wallet.OwnerID, cfg.Wallet.InitialBalance, cfg.Wallet.Currency)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed ledger account")
		}
		log.Info().
			Str("wallet_id", account.WalletID).
			Int64("balance", account.Balance).
			Str("currency", account.Currency).
			Msg("Ledger account seeded")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  settlementSvc,
		Ledger:         ledger,
		Builder:        builder,
		Validator:      validator,
		KeyRing:        keyRing,
		APIKeyVerifier: apiKeyVerifier,
		AdminKeyHash:   cfg.Admin.APIKeyHash,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
