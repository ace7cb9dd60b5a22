// Package seed carga un catálogo de demostración a través de los casos de uso,
// de modo que se aplican las mismas validaciones y la misma cascada que en la API.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/catalogxml"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// Report resumen de la importación.
type Report struct {
	Categories int
	Products   int
	Articles   int
	Users      int
	Skipped    []string
}

// Importer recorre el catálogo y crea cada nodo.
type Importer struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	articles   *usecase.ArticleUseCase
	cascade    *cascade.UseCase
	auth       *auth.AuthUseCase
	log        *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(
	categories *usecase.CategoryUseCase,
	products *usecase.ProductUseCase,
	articles *usecase.ArticleUseCase,
	cascadeUC *cascade.UseCase,
	authUC *auth.AuthUseCase,
	log *logger.Logger,
) *Importer {
	return &Importer{
		categories: categories,
		products:   products,
		articles:   articles,
		cascade:    cascadeUC,
		auth:       authUC,
		log:        log.Named("seed"),
	}
}

// Import crea categorías, productos, artículos y usuarios.
// Los nodos se crean activos y el estado inactivo se aplica al final con la cascada,
// así ningún hijo queda activo bajo un padre inactivo.
// Con strict=true las categorías que no pasan las reglas de nombre se omiten con todo su árbol.
func (im *Importer) Import(ctx context.Context, cat *catalogxml.Catalog, strict bool) (*Report, error) {
	rep := &Report{}
	for _, c := range cat.Categories {
		created, err := im.categories.Create(ctx, dto.CreateCategoryRequest{
			Name:        c.Name,
			Description: c.Description,
			Active:      true,
			Strict:      strict,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				rep.skip("categoría %q: %v", c.Name, err)
				continue
			}
			return rep, err
		}
		rep.Categories++

		for _, p := range c.Products {
			if err := im.importProduct(ctx, created.ID, p, rep); err != nil {
				return rep, err
			}
		}
		if !c.Active {
			if _, err := im.cascade.DisableCategory(ctx, created.ID); err != nil {
				return rep, fmt.Errorf("desactivar categoría %q: %w", c.Name, err)
			}
		}
	}

	for _, u := range cat.Users {
		if _, err := im.auth.RegisterUser(ctx, u.Username, u.Password, u.Role); err != nil {
			if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
				rep.skip("usuario %q: %v", u.Username, err)
				continue
			}
			return rep, err
		}
		rep.Users++
	}

	im.log.Info().
		Int("categories", rep.Categories).
		Int("products", rep.Products).
		Int("articles", rep.Articles).
		Int("users", rep.Users).
		Int("skipped", len(rep.Skipped)).
		Msg("catálogo importado")
	return rep, nil
}

func (im *Importer) importProduct(ctx context.Context, categoryID int64, p catalogxml.Product, rep *Report) error {
	created, err := im.products.Create(ctx, categoryID, p.Name, p.Description, true)
	if err != nil {
		return err
	}
	rep.Products++

	for _, a := range p.Articles {
		active := a.Active
		_, err := im.articles.Create(ctx, dto.CreateArticleRequest{
			Name:        a.Name,
			Description: a.Description,
			Price:       a.Price,
			Product:     created.ID,
			Active:      &active,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				rep.skip("artículo %q: %v", a.Name, err)
				continue
			}
			return err
		}
		rep.Articles++
	}

	if !p.Active {
		if _, err := im.cascade.DisableProduct(ctx, created.ID); err != nil {
			return fmt.Errorf("desactivar producto %q: %w", p.Name, err)
		}
	}
	return nil
}

func (r *Report) skip(format string, args ...any) {
	r.Skipped = append(r.Skipped, fmt.Sprintf(format, args...))
}
