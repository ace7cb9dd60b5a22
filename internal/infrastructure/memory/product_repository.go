package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	v view
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{v: view{store: store}}
}

// Create persiste el producto. La categoría debe existir (equivalente a la FK).
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.categories[product.CategoryID]; !ok {
			return domain.NewValidationError("category", "la categoría no existe")
		}
		st.nextProduct++
		product.ID = st.nextProduct
		st.products[product.ID] = *product
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate igual que GetByID: las tx en memoria ya están serializadas.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza la fila si existe.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[product.ID]; !ok {
			return nil
		}
		if _, ok := st.categories[product.CategoryID]; !ok {
			return domain.NewValidationError("category", "la categoría no existe")
		}
		st.products[product.ID] = *product
		return nil
	})
}

// SetActiveByCategory actualiza en bloque todos los productos de la categoría.
func (r *ProductRepo) SetActiveByCategory(_ context.Context, categoryID int64, active bool, at time.Time) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		for id, p := range st.products {
			if p.CategoryID != categoryID {
				continue
			}
			p.Active = active
			p.UpdatedAt = at
			st.products[id] = p
			n++
		}
		return nil
	})
	return n, err
}

// List filtra y ordena por id ascendente.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(st *state) error {
		out = paginate(filterProducts(st, filter), limit, offset)
		return nil
	})
	return out, err
}

// Count cuenta las filas que cumplen el filtro.
func (r *ProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = len(filterProducts(st, filter))
		return nil
	})
	return n, err
}

// Delete elimina el producto y sus artículos.
func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		deleteProductCascade(st, id)
		return nil
	})
}

func deleteProductCascade(st *state, id int64) {
	delete(st.products, id)
	for aid, a := range st.articles {
		if a.ProductID == id {
			delete(st.articles, aid)
		}
	}
}

func filterProducts(st *state, f repository.ProductFilter) []*entity.Product {
	list := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
