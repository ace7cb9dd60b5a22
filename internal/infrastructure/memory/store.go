// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory (desarrollo local) y como doble de repositorios en los tests.
// Las transacciones trabajan sobre una copia del estado que solo se publica en el commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

type state struct {
	categories map[int64]entity.Category
	products   map[int64]entity.Product
	articles   map[int64]entity.Article
	users      map[int64]entity.User

	nextCategory int64
	nextProduct  int64
	nextArticle  int64
	nextUser     int64
}

func newState() *state {
	return &state{
		categories: make(map[int64]entity.Category),
		products:   make(map[int64]entity.Product),
		articles:   make(map[int64]entity.Article),
		users:      make(map[int64]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		categories:   make(map[int64]entity.Category, len(s.categories)),
		products:     make(map[int64]entity.Product, len(s.products)),
		articles:     make(map[int64]entity.Article, len(s.articles)),
		users:        make(map[int64]entity.User, len(s.users)),
		nextCategory: s.nextCategory,
		nextProduct:  s.nextProduct,
		nextArticle:  s.nextArticle,
		nextUser:     s.nextUser,
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.articles {
		c.articles[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// view resuelve sobre qué estado opera un repositorio: el del store (con lock) o el de una tx abierta.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

// write ejecuta fn sobre una copia y la publica solo si no hay error,
// para que una escritura fuera de tx también sea todo o nada.
func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	work := v.store.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	v.store.data = work
	return nil
}

var _ cascade.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una "transacción" en memoria (serializada por el mutex del store).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run pasa a fn repositorios atados a una copia del estado; si fn falla la copia se descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	articleRepo repository.ArticleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.data.clone()
	v := view{store: r.store, tx: work}
	if err := fn(&CategoryRepo{v: v}, &ProductRepo{v: v}, &ArticleRepo{v: v}); err != nil {
		return err
	}
	r.store.data = work
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
