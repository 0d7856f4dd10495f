package main

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/economydelivery"
	"github.com/playforge/economy/internal/hooks"
	"github.com/playforge/economy/internal/identity"
	"github.com/playforge/economy/internal/ledgerservice"
	"github.com/playforge/economy/internal/middleware"
	"github.com/playforge/economy/internal/obs"
	"github.com/playforge/economy/internal/storage"
	"github.com/playforge/economy/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	currencies, err := loadCurrencies("./configs")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load currency policies")
	}

	ctx := context.Background()

	kind, err := storage.ParseKind(config.StorageBackend)
	if err != nil {
		logger.Fatal().Err(err).Msg("unknown storage backend")
	}

	backend, err := storage.Open(ctx, kind, config.StorageSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open storage backend")
	}
	defer backend.Close()

	if err := storage.EnsureSchema(ctx, backend); err != nil {
		logger.Fatal().Err(err).Msg("cannot ensure schema")
	}

	server, err := createServer(backend, logger, currencies)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func loadCurrencies(path string) (domain.Currencies, error) {
	loaded, err := configpkg.LoadCurrencies(path)
	if err != nil {
		return nil, err
	}

	if len(loaded) == 0 {
		return nil, errors.New("no currencies configured")
	}

	currencies := make(domain.Currencies, len(loaded))
	for _, c := range loaded {
		currencies[c.Type] = domain.Currency{
			Type:            c.Type,
			InitialBalance:  c.InitialBalance,
			MinimumBalance:  c.MinimumBalance,
			TransferAllowed: c.TransferAllowed,
			TransferTaxRate: c.TransferTaxRate,
		}
	}

	return currencies, nil
}

func createServer(backend storage.Backend, logger zerolog.Logger, currencies domain.Currencies) (*gin.Engine, error) {

	ring := hooks.NewRing()
	ring.After(func(ctx context.Context, m hooks.Mutation) {
		zerolog.Ctx(ctx).Debug().
			Str("op", string(m.Op)).
			Str("uuid", m.UUID).
			Str("currency", m.CurrencyType).
			Int64("amount", m.Amount).
			Msg("balance mutated")
	})

	metrics := obs.NewMetrics()

	ledgerService := ledgerservice.New(backend, currencies, ring, metrics)
	ledgerHandler := economydelivery.NewHandler(ledgerService)
	playerHandler := economydelivery.NewPlayerHandler(identity.NewInMemory())

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.GET("/balances/:uuid/:currency", ledgerHandler.Get)
	server.POST("/balances/:uuid/:currency", ledgerHandler.Init)
	server.PUT("/balances/:uuid/:currency", ledgerHandler.Set)
	server.POST("/balances/:uuid/:currency/add", ledgerHandler.Add)
	server.POST("/balances/:uuid/:currency/subtract", ledgerHandler.Subtract)

	server.POST("/transfers", ledgerHandler.Transfer)

	server.GET("/logs", ledgerHandler.Logs)
	server.GET("/rankings/:currency", ledgerHandler.Top)

	server.GET("/players/:name", playerHandler.Get)

	server.GET("/metrics", gin.WrapH(metrics.Handler()))

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", economydelivery.CurrencyValidator(currencies))
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	return server, nil
}
