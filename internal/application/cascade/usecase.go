// Package cascade propaga el estado activo/inactivo hacia abajo en la jerarquía.
//
//	Category.disable → categoría + todos sus productos inactivos (los artículos no se tocan)
//	Category.enable  → categoría + TODOS sus productos activos (pisa desactivaciones individuales)
//	Product.disable  → producto + todos sus artículos inactivos
//
// No hay Product.enable ni propagación hacia arriba.
package cascade

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// Result resume una llamada: Changed=false indica no-op (ya estaba en ese estado, nada persistido).
type Result struct {
	Changed         bool
	ChildrenUpdated int64
}

// UseCase máquina de estados de la cascada. Cada operación corre en una única transacción
// y bloquea la fila del padre antes de decidir si hay cambio.
type UseCase struct {
	tx  TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log.Named("cascade"), now: time.Now}
}

// DisableCategory desactiva la categoría y, en bloque, todos sus productos.
func (uc *UseCase) DisableCategory(ctx context.Context, id int64) (*Result, error) {
	res := &Result{}
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository, _ repository.ArticleRepository) error {
		c, err := categories.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if !c.Disable(now) {
			return nil
		}
		if err := categories.Update(ctx, c); err != nil {
			return err
		}
		n, err := products.SetActiveByCategory(ctx, c.ID, false, now)
		if err != nil {
			return err
		}
		res.Changed, res.ChildrenUpdated = true, n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("desactivar categoría %d: %w", id, err)
	}
	uc.logResult("categoría desactivada", "category_id", id, res)
	return res, nil
}

// EnableCategory activa la categoría y fuerza activos a todos sus productos,
// incluidos los que estaban desactivados individualmente.
func (uc *UseCase) EnableCategory(ctx context.Context, id int64) (*Result, error) {
	res := &Result{}
	err := uc.tx.Run(ctx, func(categories repository.CategoryRepository, products repository.ProductRepository, _ repository.ArticleRepository) error {
		c, err := categories.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if !c.Enable(now) {
			return nil
		}
		if err := categories.Update(ctx, c); err != nil {
			return err
		}
		n, err := products.SetActiveByCategory(ctx, c.ID, true, now)
		if err != nil {
			return err
		}
		res.Changed, res.ChildrenUpdated = true, n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("activar categoría %d: %w", id, err)
	}
	uc.logResult("categoría activada", "category_id", id, res)
	return res, nil
}

// DisableProduct desactiva el producto y, en bloque, todos sus artículos.
func (uc *UseCase) DisableProduct(ctx context.Context, id int64) (*Result, error) {
	res := &Result{}
	err := uc.tx.Run(ctx, func(_ repository.CategoryRepository, products repository.ProductRepository, articles repository.ArticleRepository) error {
		p, err := products.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if !p.Disable(now) {
			return nil
		}
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		n, err := articles.SetActiveByProduct(ctx, p.ID, false, now)
		if err != nil {
			return err
		}
		res.Changed, res.ChildrenUpdated = true, n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("desactivar producto %d: %w", id, err)
	}
	uc.logResult("producto desactivado", "product_id", id, res)
	return res, nil
}

func (uc *UseCase) logResult(msg, key string, id int64, res *Result) {
	if !res.Changed {
		uc.log.Debug().Int64(key, id).Msg("sin cambios: " + msg)
		return
	}
	uc.log.Info().Int64(key, id).Int64("children_updated", res.ChildrenUpdated).Msg(msg)
}
