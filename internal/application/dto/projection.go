package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// NewCategoryResponse proyecta la entidad con la forma de listado.
// Las tres proyecciones son la única fuente del formato de salida (fechas, precio con 2 decimales).
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		DateCreated: c.CreatedAt,
		DateUpdated: c.UpdatedAt,
	}
}

// FormatPrice serializa precios siempre con dos decimales ("3.50").
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(entity.ArticlePriceScale)
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		Category:    p.CategoryID,
		DateCreated: p.CreatedAt,
		DateUpdated: p.UpdatedAt,
	}
}

func NewArticleResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Active:      a.Active,
		Price:       FormatPrice(a.Price),
		Product:     a.ProductID,
		DateCreated: a.CreatedAt,
		DateUpdated: a.UpdatedAt,
	}
}

// CategoryResponses proyecta una lista con la forma de listado.
func CategoryResponses(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

// ProductResponses proyecta una lista con la forma de listado.
func ProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// ArticleResponses proyecta una lista con la forma de listado.
func ArticleResponses(list []*entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewArticleResponse(a))
	}
	return out
}
