package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

func seed(t *testing.T, store *memory.Store) (*entity.Category, *entity.Product, *entity.Article) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	c := &entity.Category{Name: "Fruits", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, memory.NewCategoryRepository(store).Create(ctx, c))
	p := &entity.Product{CategoryID: c.ID, Name: "Ananas", Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, p))
	a := &entity.Article{ProductID: p.ID, Name: "Ananas bio", Active: true, Price: decimal.RequireFromString("2.50"), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, memory.NewArticleRepository(store).Create(ctx, a))
	return c, p, a
}

func TestCategoryDelete_BorraDescendientes(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	c, p, a := seed(t, store)

	require.NoError(t, memory.NewCategoryRepository(store).Delete(ctx, c.ID))

	gotP, err := memory.NewProductRepository(store).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gotP)
	gotA, err := memory.NewArticleRepository(store).GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, gotA)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	store := memory.NewStore()
	err := memory.NewProductRepository(store).Create(context.Background(), &entity.Product{CategoryID: 99, Name: "x"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestList_OrdenYPaginacion(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewCategoryRepository(store)
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Create(ctx, &entity.Category{Name: name, Active: name != "c"}))
	}

	active := true
	list, err := repo.List(ctx, repository.CategoryFilter{Active: &active}, 2, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Name)
	assert.Equal(t, "d", list[1].Name)

	n, err := repo.Count(ctx, repository.CategoryFilter{Active: &active})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := repo.List(ctx, repository.CategoryFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	c, p, _ := seed(t, store)
	boom := errors.New("fallo a mitad de la cascada")

	err := memory.NewTxRunner(store).Run(ctx, func(cats repository.CategoryRepository, prods repository.ProductRepository, _ repository.ArticleRepository) error {
		c.Active = false
		require.NoError(t, cats.Update(ctx, c))
		_, err := prods.SetActiveByCategory(ctx, c.ID, false, time.Now())
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	gotC, _ := memory.NewCategoryRepository(store).GetByID(ctx, c.ID)
	assert.True(t, gotC.Active)
	gotP, _ := memory.NewProductRepository(store).GetByID(ctx, p.ID)
	assert.True(t, gotP.Active)
}

func TestTxRunner_CommitPublicaCambios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, p, a := seed(t, store)

	err := memory.NewTxRunner(store).Run(ctx, func(_ repository.CategoryRepository, _ repository.ProductRepository, arts repository.ArticleRepository) error {
		n, err := arts.SetActiveByProduct(ctx, p.ID, false, time.Now())
		assert.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)

	gotA, _ := memory.NewArticleRepository(store).GetByID(ctx, a.ID)
	assert.False(t, gotA.Active)
}

func TestUserCreate_UsernameUnico(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repo := memory.NewUserRepository(store)
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "admin"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{Username: "admin"}), domain.ErrDuplicate)

	u, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}
