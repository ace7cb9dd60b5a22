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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, category_id, name, description, active, date_created, date_updated`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. La categoría debe existir (FK).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (category_id, name, description, active, date_created, date_updated)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.CategoryID, p.Name, p.Description, p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("category", "la categoría no existe")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto con SELECT ... FOR UPDATE. Solo tiene efecto dentro de una tx.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET category_id = $2, name = $3, description = $4, active = $5, date_updated = $6
		WHERE id = $1`,
		p.ID, p.CategoryID, p.Name, p.Description, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("category", "la categoría no existe")
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetActiveByCategory actualiza en una sola sentencia el flag de los productos de la categoría.
func (r *ProductRepo) SetActiveByCategory(ctx context.Context, categoryID int64, active bool, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET active = $2, date_updated = $3 WHERE category_id = $1`,
		categoryID, active, at,
	)
	if err != nil {
		return 0, fmt.Errorf("update products by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// List lista productos ordenados por id ascendente.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	w := productWhere(filter)
	query := `SELECT ` + productColumns + ` FROM products` + w.String() + ` ORDER BY id ASC` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cuenta los productos que cumplen el filtro.
func (r *ProductRepo) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	w := productWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina un producto (sus artículos caen por ON DELETE CASCADE).
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func productWhere(f repository.ProductFilter) *where {
	w := &where{}
	if f.CategoryID != nil {
		w.add("category_id = $%d", *f.CategoryID)
	}
	if f.Active != nil {
		w.add("active = $%d", *f.Active)
	}
	return w
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
