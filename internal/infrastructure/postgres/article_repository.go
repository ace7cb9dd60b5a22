package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, product_id, name, description, active, price, date_created, date_updated`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create persiste un nuevo artículo. El precio viaja como NUMERIC vía pgx-shopspring-decimal.
func (r *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO articles (product_id, name, description, active, price, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		a.ProductID, a.Name, a.Description, a.Active, a.Price, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("product", "el producto no existe")
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *ArticleRepo) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a, err := scanArticle(r.q.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// Update actualiza un artículo existente.
func (r *ArticleRepo) Update(ctx context.Context, a *entity.Article) error {
	_, err := r.q.Exec(ctx, `
		UPDATE articles SET product_id = $2, name = $3, description = $4, active = $5, price = $6, date_updated = $7
		WHERE id = $1`,
		a.ID, a.ProductID, a.Name, a.Description, a.Active, a.Price, a.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("product", "el producto no existe")
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// SetActiveByProduct actualiza en una sola sentencia el flag de los artículos del producto.
func (r *ArticleRepo) SetActiveByProduct(ctx context.Context, productID int64, active bool, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE articles SET active = $2, date_updated = $3 WHERE product_id = $1`,
		productID, active, at,
	)
	if err != nil {
		return 0, fmt.Errorf("update articles by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List lista artículos ordenados por id ascendente.
func (r *ArticleRepo) List(ctx context.Context, filter repository.ArticleFilter, limit, offset int) ([]*entity.Article, error) {
	w := articleWhere(filter)
	query := `SELECT ` + articleColumns + ` FROM articles` + w.String() + ` ORDER BY id ASC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Count cuenta los artículos que cumplen el filtro.
func (r *ArticleRepo) Count(ctx context.Context, filter repository.ArticleFilter) (int, error) {
	w := articleWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM articles`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

// Delete elimina un artículo por ID.
func (r *ArticleRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func articleWhere(f repository.ArticleFilter) *where {
	w := &where{}
	if f.ProductID != nil {
		w.add("product_id = $%d", *f.ProductID)
	}
	if f.Active != nil {
		w.add("active = $%d", *f.Active)
	}
	return w
}

func scanArticle(row pgx.Row) (*entity.Article, error) {
	var a entity.Article
	if err := row.Scan(&a.ID, &a.ProductID, &a.Name, &a.Description, &a.Active, &a.Price, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
