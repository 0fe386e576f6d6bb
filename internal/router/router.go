package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/config"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/gateway"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/handler"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/infra"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/middleware"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/repository"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/service"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, fiscalCB, paymentCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	apiStore := middleware.NewMemoryStore()
	loginStore := middleware.NewMemoryStore()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(apiStore, 1000, time.Minute, "Muitas solicitações. Tente novamente em instantes."))

	// ── Infrastructure ───────────────────────────────────────────────────────
	fiscalClient := infra.NewFiscalClient(cfg.FiscalSidecarURL, fiscalCB)
	paymentClient := infra.NewPaymentClient(cfg.PaymentGatewayURL, paymentCB)
	ledgerClient := infra.NewLedgerClient(cfg.LedgerServiceURL)

	pointValue, err := decimal.NewFromString(cfg.PointValue)
	if err != nil || !pointValue.IsPositive() {
		pointValue = decimal.RequireFromString("0.05")
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	operatorRepo := repository.NewOperatorRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	fiscalRepo := repository.NewFiscalRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(operatorRepo, cfg)
	cashierSvc := service.NewCashierService(cashierRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	stockGw := gateway.NewRepoStock(productRepo)
	checkoutSvc := service.NewCheckoutService(
		saleRepo, fiscalRepo, productRepo, customerRepo,
		cashierSvc, cashierRepo,
		stockGw, paymentClient, fiscalClient, ledgerClient,
		dispatcher, pointValue,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	cashierH := handler.NewCashierHandler(cashierSvc)
	fiscalH := handler.NewFiscalHandler(fiscalRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(loginStore), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, supervisor, admin — declared per-endpoint
		v1.POST("/checkout", middleware.RequireRole("cashier", "supervisor", "admin"), checkoutH.Complete)
		v1.GET("/sales", middleware.RequireRole("cashier", "supervisor", "admin"), checkoutH.List)
		v1.GET("/sales/:id", middleware.RequireRole("cashier", "supervisor", "admin"), checkoutH.Get)
		// Cancellation needs supervisor approval
		v1.DELETE("/sales/:id", middleware.RequireRole("supervisor", "admin"), checkoutH.Cancel)

		cashier := v1.Group("/cashier")
		{
			cashier.POST("/open", middleware.RequireRole("cashier", "supervisor", "admin"), cashierH.Open)
			cashier.POST("/withdraw", middleware.RequireRole("cashier", "supervisor", "admin"), cashierH.Withdraw)
			cashier.POST("/deposit", middleware.RequireRole("cashier", "supervisor", "admin"), cashierH.Deposit)
			cashier.POST("/close", middleware.RequireRole("cashier", "supervisor", "admin"), cashierH.Close)
			cashier.GET("/active", middleware.RequireRole("cashier", "supervisor", "admin"), cashierH.Active)
			cashier.GET("/:id/summary", middleware.RequireRole("cashier", "supervisor", "admin"), cashierH.Summary)
			cashier.GET("/history", middleware.RequireRole("supervisor", "admin"), cashierH.History)
		}

		fiscal := v1.Group("/fiscal", middleware.RequireRole("supervisor", "admin"))
		{
			fiscal.GET("/sale/:id", fiscalH.BySale)
		}
	}

	return r
}
