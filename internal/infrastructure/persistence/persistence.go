// Package persistence elige el backend de repositorios según DB_DRIVER.
package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// Repositories puertos de persistencia listos para inyectar.
type Repositories struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Articles   repository.ArticleRepository
	Users      repository.UserRepository
	Tx         cascade.TxRunner
	close      func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open abre el backend configurado. Con postgres y Migrate=true aplica las migraciones embebidas.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &Repositories{
			Categories: memory.NewCategoryRepository(store),
			Products:   memory.NewProductRepository(store),
			Articles:   memory.NewArticleRepository(store),
			Users:      memory.NewUserRepository(store),
			Tx:         memory.NewTxRunner(store),
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Migrate {
			version, err := postgres.Migrate(pool)
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Uint("version", version).Msg("migraciones aplicadas")
		}
		return &Repositories{
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Articles:   postgres.NewArticleRepository(pool),
			Users:      postgres.NewUserRepository(pool),
			Tx:         postgres.NewTxRunner(pool),
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
}
