package cascade

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda persistido ningún cambio (ni del padre ni de los hijos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
		articleRepo repository.ArticleRepository,
	) error) error
}
