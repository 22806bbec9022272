package handler

import (
	"agent-settlement/internal/adapter/http/middleware"
	"agent-settlement/internal/core/ports"
	"agent-settlement/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc  ports.SettlementService
	Ledger         ports.Ledger
	Builder        ports.MandateBuilder
	Validator      ports.MandateValidator
	KeyRing        *service.KeyRing
	APIKeyVerifier ports.APIKeyVerifier
	AdminKeyHash   string // empty disables the operator guard
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis when configured)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Verification key publication
	keysHandler := NewKeysHandler(deps.KeyRing)
	r.GET("/.well-known/jwks.json", keysHandler.JWKS)

	adminAuth := middleware.AdminAuth(deps.AdminKeyHash, deps.APIKeyVerifier, deps.Logger)

	v1 := r.Group("/api/v1")

	// --- Mandate construction and verification ---
	mandateHandler := NewMandateHandler(deps.Builder, deps.Validator)
	mandates := v1.Group("/mandates")
	{
		mandates.POST("/intent", mandateHandler.BuildIntent)
		mandates.POST("/cart", mandateHandler.SignCart)
		mandates.POST("/cart/validate", mandateHandler.ValidateCart)
		mandates.POST("/payment", mandateHandler.SignPayment)
		mandates.POST("/flow", mandateHandler.FullFlow)
		mandates.POST("/spending-limit", mandateHandler.CreateSpendingLimit)
	}

	// --- Store ledger ---
	walletHandler := NewWalletHandler(deps.Ledger)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", walletHandler.CreateWallet)
		wallets.GET("/:id", walletHandler.GetBalance)
		wallets.POST("/:id/tokens", walletHandler.IssueToken)
		wallets.POST("/:id/topup", adminAuth, walletHandler.Topup)
	}

	// --- Settlement ---
	paymentHandler := NewPaymentHandler(deps.SettlementSvc)
	payments := v1.Group("/payments")
	{
		payments.POST("", paymentHandler.ProcessPayment)
		payments.POST("/refund", adminAuth, paymentHandler.ProcessRefund)
		payments.GET("", paymentHandler.ListTransactions)
		payments.GET("/:id", paymentHandler.GetTransaction)
	}

	return r
}
