package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/sburn-labs/sburn/internal/auth"
	"github.com/sburn-labs/sburn/internal/config"
	"github.com/sburn-labs/sburn/internal/events"
	"github.com/sburn-labs/sburn/internal/middleware"
	"github.com/sburn-labs/sburn/internal/token"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Stores and services
	var store token.Store
	var credRepo auth.Repository
	if d.DB != nil {
		pgStore := token.NewPostgresStore(d.DB)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			return err
		}
		pgCreds := auth.NewPostgresRepository(d.DB)
		if err := pgCreds.EnsureSchema(context.Background()); err != nil {
			return err
		}
		store = pgStore
		credRepo = pgCreds
	} else {
		store = token.NewMemoryStore()
		credRepo = auth.NewMemoryRepository()
	}

	ledger, err := token.NewLedger(store, ledgerParams(d.Cfg), events.NewLoggerSink(d.Logger), d.Logger)
	if err != nil {
		return err
	}

	authSvc := auth.NewService(credRepo, d.Cfg.AuthSecret)
	authHandler := auth.NewHandler(authSvc)
	tokenHandler := token.NewHandler(ledger)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterAuthRoutes(api, authHandler)

	// Mutating routes: authenticated, rate limited, idempotent.
	protected := api.Group("", middleware.Auth(authSvc))
	protected.Use(middleware.OpRateLimit(d.Cache, 60))
	if d.Cache != nil {
		protected.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterTokenRoutes(api, protected, tokenHandler)

	return nil
}

func ledgerParams(cfg config.Config) token.Params {
	return token.Params{
		Name:              cfg.TokenName,
		Symbol:            cfg.TokenSymbol,
		Decimals:          cfg.Decimals,
		TokenURI:          cfg.TokenURI,
		BurnRateBps:       cfg.BurnRateBps,
		FeeRateBps:        cfg.FeeRateBps,
		MinTransfer:       cfg.MinTransfer,
		MaxMint:           cfg.MaxMint,
		BurnSink:          cfg.BurnSink,
		FeeRecipient:      cfg.FeeRecipient,
		Minter:            cfg.Minter,
		AllowSelfTransfer: cfg.AllowSelfTransfer,
		CheckOrder:        cfg.CheckOrder,
	}
}
