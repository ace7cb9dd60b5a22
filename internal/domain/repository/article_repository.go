package repository

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ArticleFilter criterios de listado (coincidencia exacta). Campos nil no filtran.
type ArticleFilter struct {
	ProductID *int64
	Active    *bool
}

// ArticleRepository define el puerto de persistencia para Article (DIP).
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	// SetActiveByProduct actualiza en bloque el flag de todos los artículos del producto.
	SetActiveByProduct(ctx context.Context, productID int64, active bool, at time.Time) (int64, error)
	List(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*entity.Article, error)
	Count(ctx context.Context, filter ArticleFilter) (int, error)
	Delete(ctx context.Context, id int64) error
}
