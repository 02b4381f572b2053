package main

import (
	"context"

	"github.com/jhoicas/sweetshop-api/internal/application/inventory"
	"github.com/jhoicas/sweetshop-api/internal/domain/repository"
	"github.com/jhoicas/sweetshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/sweetshop-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sweetshop-api/pkg/config"
	"github.com/jhoicas/sweetshop-api/pkg/logger"
)

// store agrupa los adaptadores de persistencia elegidos por DB_DRIVER.
type store struct {
	users  repository.UserRepository
	sweets repository.SweetRepository
	tx     inventory.TxRunner
	ping   func(ctx context.Context) error
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		sweets := memory.NewSweetRepository()
		return &store{
			users:  memory.NewUserRepository(),
			sweets: sweets,
			tx:     memory.NewTxRunner(sweets),
			ping:   func(context.Context) error { return nil },
			close:  func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("scripts", applied).Msg("esquema actualizado")
	}
	return &store{
		users:  postgres.NewUserRepository(pool),
		sweets: postgres.NewSweetRepository(pool),
		tx:     postgres.NewTxRunner(pool),
		ping:   pool.Ping,
		close:  pool.Close,
	}, nil
}
