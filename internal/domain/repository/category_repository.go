package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CategoryFilter criterios de listado. Campos nil no filtran.
type CategoryFilter struct {
	Active *bool
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe. List ordena por id ascendente; limit <= 0 = sin límite.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// GetByIDForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, filter CategoryFilter, limit, offset int) ([]*entity.Category, error)
	Count(ctx context.Context, filter CategoryFilter) (int, error)
	Delete(ctx context.Context, id int64) error
}
