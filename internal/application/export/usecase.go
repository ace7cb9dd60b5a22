// Package export genera las salidas imprimibles del catálogo: ficha PDF por categoría y feed XML.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// UseCase arma los datos de exportación y delega el formato en los renderers.
type UseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	articles   repository.ArticleRepository
	sheet      ports.SheetRenderer
	feed       ports.FeedRenderer
	feedTitle  string
	now        func() time.Time
}

// NewUseCase construye el caso de uso inyectando repositorios y renderers.
func NewUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	articles repository.ArticleRepository,
	sheet ports.SheetRenderer,
	feed ports.FeedRenderer,
	feedTitle string,
) *UseCase {
	return &UseCase{
		categories: categories,
		products:   products,
		articles:   articles,
		sheet:      sheet,
		feed:       feed,
		feedTitle:  feedTitle,
		now:        time.Now,
	}
}

// CategorySheet genera el PDF de la categoría (en cualquier estado) con sus productos
// activos y, por producto, sus artículos activos.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la categoría no existe.
func (uc *UseCase) CategorySheet(ctx context.Context, id int64) ([]byte, string, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: obtener categoría: %w", err)
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}
	active := true
	products, err := uc.products.List(ctx, repository.ProductFilter{CategoryID: &c.ID, Active: &active}, 0, 0)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: listar productos: %w", err)
	}

	sheet := &dto.CategorySheet{
		Category:    dto.NewCategoryResponse(c),
		Products:    make([]dto.SheetProduct, 0, len(products)),
		GeneratedAt: uc.now(),
	}
	for _, p := range products {
		articles, err := uc.articles.List(ctx, repository.ArticleFilter{ProductID: &p.ID, Active: &active}, 0, 0)
		if err != nil {
			return nil, "", fmt.Errorf("ficha: listar artículos del producto %d: %w", p.ID, err)
		}
		sp := dto.SheetProduct{Product: dto.NewProductResponse(p), Articles: make([]dto.ArticleResponse, 0, len(articles))}
		for _, a := range articles {
			sp.Articles = append(sp.Articles, dto.NewArticleResponse(a))
		}
		sheet.Products = append(sheet.Products, sp)
	}

	pdf, err := uc.sheet.RenderCategorySheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("ficha: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("categoria-%d.pdf", c.ID), nil
}

// Feed genera el XML con los artículos visibles: artículo, producto y categoría activos.
func (uc *UseCase) Feed(ctx context.Context) ([]byte, error) {
	active := true
	articles, err := uc.articles.List(ctx, repository.ArticleFilter{Active: &active}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("feed: listar artículos: %w", err)
	}

	products := map[int64]*entity.Product{}
	categories := map[int64]*entity.Category{}
	feed := &dto.Feed{Title: uc.feedTitle, GeneratedAt: uc.now()}
	for _, a := range articles {
		p, ok := products[a.ProductID]
		if !ok {
			if p, err = uc.products.GetByID(ctx, a.ProductID); err != nil {
				return nil, fmt.Errorf("feed: obtener producto %d: %w", a.ProductID, err)
			}
			products[a.ProductID] = p
		}
		if p == nil || !p.Active {
			continue
		}
		c, ok := categories[p.CategoryID]
		if !ok {
			if c, err = uc.categories.GetByID(ctx, p.CategoryID); err != nil {
				return nil, fmt.Errorf("feed: obtener categoría %d: %w", p.CategoryID, err)
			}
			categories[p.CategoryID] = c
		}
		if c == nil || !c.Active {
			continue
		}
		feed.Items = append(feed.Items, dto.FeedItem{
			ArticleID:   a.ID,
			Name:        a.Name,
			Description: a.Description,
			Price:       dto.FormatPrice(a.Price),
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    c.Name,
			UpdatedAt:   a.UpdatedAt,
		})
	}

	out, err := uc.feed.RenderFeed(feed)
	if err != nil {
		return nil, fmt.Errorf("feed: serializar XML: %w", err)
	}
	return out, nil
}
