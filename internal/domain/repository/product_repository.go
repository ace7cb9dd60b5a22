package repository

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductFilter criterios de listado (coincidencia exacta). Campos nil no filtran.
type ProductFilter struct {
	CategoryID *int64
	Active     *bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIDForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// SetActiveByCategory actualiza en bloque el flag de todos los productos de la categoría.
	SetActiveByCategory(ctx context.Context, categoryID int64, active bool, at time.Time) (int64, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	Delete(ctx context.Context, id int64) error
}
