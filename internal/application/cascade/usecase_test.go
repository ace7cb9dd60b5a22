package cascade_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// countingProducts / countingArticles cuentan escrituras para verificar los no-op.
type countingProducts struct {
	repository.ProductRepository
	writes *int
}

func (r countingProducts) Update(ctx context.Context, p *entity.Product) error {
	*r.writes++
	return r.ProductRepository.Update(ctx, p)
}

func (r countingProducts) SetActiveByCategory(ctx context.Context, id int64, active bool, at time.Time) (int64, error) {
	*r.writes++
	return r.ProductRepository.SetActiveByCategory(ctx, id, active, at)
}

type countingCategories struct {
	repository.CategoryRepository
	writes *int
}

func (r countingCategories) Update(ctx context.Context, c *entity.Category) error {
	*r.writes++
	return r.CategoryRepository.Update(ctx, c)
}

type countingArticles struct {
	repository.ArticleRepository
	writes *int
}

func (r countingArticles) SetActiveByProduct(ctx context.Context, id int64, active bool, at time.Time) (int64, error) {
	*r.writes++
	return r.ArticleRepository.SetActiveByProduct(ctx, id, active, at)
}

type countingTx struct {
	inner  *memory.TxRunner
	writes int
}

func (c *countingTx) Run(ctx context.Context, fn func(repository.CategoryRepository, repository.ProductRepository, repository.ArticleRepository) error) error {
	return c.inner.Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository, arts repository.ArticleRepository) error {
		return fn(
			countingCategories{cats, &c.writes},
			countingProducts{prods, &c.writes},
			countingArticles{arts, &c.writes},
		)
	})
}

// failingProducts falla en el update en bloque, después de que la categoría ya se actualizó en la tx.
type failingProducts struct {
	repository.ProductRepository
}

func (failingProducts) SetActiveByCategory(context.Context, int64, bool, time.Time) (int64, error) {
	return 0, errors.New("conexión perdida")
}

type failingTx struct{ inner *memory.TxRunner }

func (f failingTx) Run(ctx context.Context, fn func(repository.CategoryRepository, repository.ProductRepository, repository.ArticleRepository) error) error {
	return f.inner.Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository, arts repository.ArticleRepository) error {
		return fn(cats, failingProducts{prods}, arts)
	})
}

// lockingTx registra qué lecturas con bloqueo de fila hace la cascada.
type lockingTx struct {
	inner *memory.TxRunner
	locks []string
}

type lockingCategories struct {
	repository.CategoryRepository
	tx *lockingTx
}

func (r lockingCategories) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Category, error) {
	r.tx.locks = append(r.tx.locks, "category")
	return r.CategoryRepository.GetByIDForUpdate(ctx, id)
}

type lockingProducts struct {
	repository.ProductRepository
	tx *lockingTx
}

func (r lockingProducts) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	r.tx.locks = append(r.tx.locks, "product")
	return r.ProductRepository.GetByIDForUpdate(ctx, id)
}

func (l *lockingTx) Run(ctx context.Context, fn func(repository.CategoryRepository, repository.ProductRepository, repository.ArticleRepository) error) error {
	return l.inner.Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository, arts repository.ArticleRepository) error {
		return fn(lockingCategories{cats, l}, lockingProducts{prods, l}, arts)
	})
}

type fixture struct {
	store   *memory.Store
	fruits  *entity.Category
	ananas  *entity.Product
	banane  *entity.Product
	ananasA *entity.Article
	ananasB *entity.Article
	legumes *entity.Category
	tomate  *entity.Product
}

// newFixture: Fruits (activa) con Ananas (activo, 2 artículos activos) y Banane (inactivo);
// Légumes (activa) con Tomate (activo).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cats := memory.NewCategoryRepository(store)
	prods := memory.NewProductRepository(store)
	arts := memory.NewArticleRepository(store)

	f := &fixture{store: store}
	f.fruits = &entity.Category{Name: "Fruits", Active: true}
	require.NoError(t, cats.Create(ctx, f.fruits))
	f.legumes = &entity.Category{Name: "Légumes", Active: true}
	require.NoError(t, cats.Create(ctx, f.legumes))

	f.ananas = &entity.Product{CategoryID: f.fruits.ID, Name: "Ananas", Active: true}
	require.NoError(t, prods.Create(ctx, f.ananas))
	f.banane = &entity.Product{CategoryID: f.fruits.ID, Name: "Banane", Active: false}
	require.NoError(t, prods.Create(ctx, f.banane))
	f.tomate = &entity.Product{CategoryID: f.legumes.ID, Name: "Tomate", Active: true}
	require.NoError(t, prods.Create(ctx, f.tomate))

	f.ananasA = &entity.Article{ProductID: f.ananas.ID, Name: "Ananas 1kg", Active: true, Price: decimal.RequireFromString("3.50")}
	require.NoError(t, arts.Create(ctx, f.ananasA))
	f.ananasB = &entity.Article{ProductID: f.ananas.ID, Name: "Ananas bio", Active: true, Price: decimal.RequireFromString("4.20")}
	require.NoError(t, arts.Create(ctx, f.ananasB))
	return f
}

func (f *fixture) category(t *testing.T, id int64) *entity.Category {
	c, err := memory.NewCategoryRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func (f *fixture) product(t *testing.T, id int64) *entity.Product {
	p, err := memory.NewProductRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) article(t *testing.T, id int64) *entity.Article {
	a, err := memory.NewArticleRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func newUseCase(tx cascade.TxRunner) *cascade.UseCase {
	return cascade.NewUseCase(tx, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Category.disable
// ──────────────────────────────────────────────────────────────────────────────

func TestDisableCategory_DesactivaProductosPeroNoArticulos(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(memory.NewTxRunner(f.store))

	res, err := uc.DisableCategory(context.Background(), f.fruits.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, int64(2), res.ChildrenUpdated)

	assert.False(t, f.category(t, f.fruits.ID).Active)
	assert.False(t, f.product(t, f.ananas.ID).Active)
	assert.False(t, f.product(t, f.banane.ID).Active)
	assert.True(t, f.article(t, f.ananasA.ID).Active, "la cascada no baja hasta los artículos")
	assert.True(t, f.article(t, f.ananasB.ID).Active)

	assert.True(t, f.category(t, f.legumes.ID).Active, "otras categorías no cambian")
	assert.True(t, f.product(t, f.tomate.ID).Active)
}

func TestDisableCategory_SegundaLlamadaNoEscribe(t *testing.T) {
	f := newFixture(t)
	tx := &countingTx{inner: memory.NewTxRunner(f.store)}
	uc := newUseCase(tx)

	_, err := uc.DisableCategory(context.Background(), f.fruits.ID)
	require.NoError(t, err)
	first := tx.writes
	assert.Equal(t, 2, first, "update de la categoría + update en bloque de productos")

	res, err := uc.DisableCategory(context.Background(), f.fruits.ID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, first, tx.writes, "el no-op no persiste nada")
	assert.False(t, f.category(t, f.fruits.ID).Active)
}

func TestDisableCategory_FalloRevierteTodo(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(failingTx{inner: memory.NewTxRunner(f.store)})

	_, err := uc.DisableCategory(context.Background(), f.fruits.ID)
	require.Error(t, err)

	assert.True(t, f.category(t, f.fruits.ID).Active, "la categoría vuelve al estado previo")
	assert.True(t, f.product(t, f.ananas.ID).Active)
}

func TestDisableCategory_NoExiste(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(memory.NewTxRunner(f.store))

	_, err := uc.DisableCategory(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Category.enable
// ──────────────────────────────────────────────────────────────────────────────

func TestEnableCategory_FuerzaActivosTodosLosProductos(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(memory.NewTxRunner(f.store))
	ctx := context.Background()

	_, err := uc.DisableCategory(ctx, f.fruits.ID)
	require.NoError(t, err)

	res, err := uc.EnableCategory(ctx, f.fruits.ID)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	assert.True(t, f.category(t, f.fruits.ID).Active)
	products, err := memory.NewProductRepository(f.store).List(ctx, repository.ProductFilter{CategoryID: &f.fruits.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, products, 2, "todos los productos previos siguen asociados")
	for _, p := range products {
		assert.True(t, p.Active, "%s debe quedar activo, aunque estuviera desactivado", p.Name)
	}
}

func TestEnableCategory_YaActivaEsNoOp(t *testing.T) {
	f := newFixture(t)
	tx := &countingTx{inner: memory.NewTxRunner(f.store)}
	uc := newUseCase(tx)

	res, err := uc.EnableCategory(context.Background(), f.fruits.ID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Zero(t, tx.writes)
	assert.False(t, f.product(t, f.banane.ID).Active, "el no-op no reactiva productos")
}

func TestEnableCategory_FalloRevierteTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := newUseCase(memory.NewTxRunner(f.store)).DisableCategory(ctx, f.legumes.ID)
	require.NoError(t, err)

	_, err = newUseCase(failingTx{inner: memory.NewTxRunner(f.store)}).EnableCategory(ctx, f.legumes.ID)
	require.Error(t, err)

	assert.False(t, f.category(t, f.legumes.ID).Active)
	assert.False(t, f.product(t, f.tomate.ID).Active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Product.disable
// ──────────────────────────────────────────────────────────────────────────────

func TestDisableProduct_DesactivaArticulos(t *testing.T) {
	f := newFixture(t)
	uc := newUseCase(memory.NewTxRunner(f.store))

	res, err := uc.DisableProduct(context.Background(), f.ananas.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ChildrenUpdated)

	assert.False(t, f.product(t, f.ananas.ID).Active)
	assert.False(t, f.article(t, f.ananasA.ID).Active)
	assert.False(t, f.article(t, f.ananasB.ID).Active)
	assert.True(t, f.category(t, f.fruits.ID).Active, "no hay propagación hacia arriba")
}

func TestDisableProduct_Idempotente(t *testing.T) {
	f := newFixture(t)
	tx := &countingTx{inner: memory.NewTxRunner(f.store)}
	uc := newUseCase(tx)

	res, err := uc.DisableProduct(context.Background(), f.banane.ID)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Zero(t, tx.writes)
}

func TestDisableProduct_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := newUseCase(memory.NewTxRunner(f.store)).DisableProduct(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo de fila
// ──────────────────────────────────────────────────────────────────────────────

func TestCascade_LeeElPadreConBloqueo(t *testing.T) {
	f := newFixture(t)
	tx := &lockingTx{inner: memory.NewTxRunner(f.store)}
	uc := newUseCase(tx)
	ctx := context.Background()

	_, err := uc.DisableCategory(ctx, f.fruits.ID)
	require.NoError(t, err)
	_, err = uc.EnableCategory(ctx, f.fruits.ID)
	require.NoError(t, err)
	_, err = uc.DisableProduct(ctx, f.ananas.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"category", "category", "product"}, tx.locks)
}
