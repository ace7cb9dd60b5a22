package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo implementación en memoria de ArticleRepository.
type ArticleRepo struct {
	v view
}

// NewArticleRepository construye el repositorio sobre el store.
func NewArticleRepository(store *Store) *ArticleRepo {
	return &ArticleRepo{v: view{store: store}}
}

// Create persiste el artículo. El producto debe existir (equivalente a la FK).
func (r *ArticleRepo) Create(_ context.Context, article *entity.Article) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[article.ProductID]; !ok {
			return domain.NewValidationError("product", "el producto no existe")
		}
		st.nextArticle++
		article.ID = st.nextArticle
		st.articles[article.ID] = *article
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ArticleRepo) GetByID(_ context.Context, id int64) (*entity.Article, error) {
	var out *entity.Article
	err := r.v.read(func(st *state) error {
		if a, ok := st.articles[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

// Update reemplaza la fila si existe.
func (r *ArticleRepo) Update(_ context.Context, article *entity.Article) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.articles[article.ID]; !ok {
			return nil
		}
		if _, ok := st.products[article.ProductID]; !ok {
			return domain.NewValidationError("product", "el producto no existe")
		}
		st.articles[article.ID] = *article
		return nil
	})
}

// SetActiveByProduct actualiza en bloque todos los artículos del producto.
func (r *ArticleRepo) SetActiveByProduct(_ context.Context, productID int64, active bool, at time.Time) (int64, error) {
	var n int64
	err := r.v.write(func(st *state) error {
		for id, a := range st.articles {
			if a.ProductID != productID {
				continue
			}
			a.Active = active
			a.UpdatedAt = at
			st.articles[id] = a
			n++
		}
		return nil
	})
	return n, err
}

// List filtra y ordena por id ascendente.
func (r *ArticleRepo) List(_ context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	var out []*entity.Article
	err := r.v.read(func(st *state) error {
		out = paginate(filterArticles(st, filter), limit, offset)
		return nil
	})
	return out, err
}

// Count cuenta las filas que cumplen el filtro.
func (r *ArticleRepo) Count(_ context.Context, filter repository.ArticleFilter) (int, error) {
	var n int
	err := r.v.read(func(st *state) error {
		n = len(filterArticles(st, filter))
		return nil
	})
	return n, err
}

// Delete elimina el artículo.
func (r *ArticleRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(st *state) error {
		delete(st.articles, id)
		return nil
	})
}

func filterArticles(st *state, f repository.ArticleFilter) []*entity.Article {
	list := make([]*entity.Article, 0, len(st.articles))
	for _, a := range st.articles {
		if f.ProductID != nil && a.ProductID != *f.ProductID {
			continue
		}
		if f.Active != nil && a.Active != *f.Active {
			continue
		}
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
