package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	v view
}

// NewCategoryRepository construye el repositorio sobre el store.
func NewCategoryRepository(store *Store) *CategoryRepo {
	return &CategoryRepo{v: view{store: store}}
}

// Create asigna el siguiente id y persiste la categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.v.write(func(st *state) error {
		st.nextCategory++
		category.ID = st.nextCategory
		st.categories[category.ID] = *category
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate igual que GetByID: las tx en memoria ya están serializadas por el mutex del store.
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

// GetByName busca por nombre exacto.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(st *state) error {
		for _, c := range st.categories {
			if c.Name == name {
				c := c
				if out == nil || c.ID < out.ID {
					out = &c
				}
			}
		}
		return nil
	})
	return out, err
}

// Update reemplaza la fila si existe; si no, no hace nada (como UPDATE sin filas afectadas).
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.categories[category.ID]; ok {
			st.categories[category.ID] = *category
		}
		return nil
	})
}

// List filtra y ordena por id ascendente.
func (r *CategoryRepo) List(_ context.Context, filter repository.CategoryFilter, limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.read(func(st *state) error {
		out = paginate(filterCategories(st, filter), limit, offset)
		return nil
	})
	return out, err
}

// Count cuenta las filas que cumplen el filtro.
func (r *CategoryRepo) Count(_ context.Context, filter repository.CategoryFilter) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = len(filterCategories(st, filter))
		return nil
	})
	return n, err
}

// Delete elimina la categoría y, en cascada, sus productos y artículos.
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		delete(st.categories, id)
		for pid, p := range st.products {
			if p.CategoryID == id {
				deleteProductCascade(st, pid)
			}
		}
		return nil
	})
}

func filterCategories(st *state, f repository.CategoryFilter) []*entity.Category {
	list := make([]*entity.Category, 0, len(st.categories))
	for _, c := range st.categories {
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		c := c
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
