package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, description, active, date_created, date_updated`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría y carga el id generado.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO categories (name, description, active, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.Name, c.Description, c.Active, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la categoría con SELECT ... FOR UPDATE. Solo tiene efecto dentro de una tx.
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByName obtiene la primera categoría con ese nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1 ORDER BY id LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// Update actualiza nombre, descripción, estado y date_updated.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, active = $4, date_updated = $5
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista categorías ordenadas por id ascendente (orden estable para paginar).
func (r *CategoryRepo) List(ctx context.Context, filter repository.CategoryFilter, limit, offset int) ([]*entity.Category, error) {
	w := categoryWhere(filter)
	query := `SELECT ` + categoryColumns + ` FROM categories` + w.String() + ` ORDER BY id ASC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count cuenta las categorías que cumplen el filtro.
func (r *CategoryRepo) Count(ctx context.Context, filter repository.CategoryFilter) (int, error) {
	w := categoryWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM categories`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// Delete elimina la categoría; productos y artículos caen por ON DELETE CASCADE.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func categoryWhere(f repository.CategoryFilter) *where {
	w := &where{}
	if f.Active != nil {
		w.add("active = $%d", *f.Active)
	}
	return w
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
