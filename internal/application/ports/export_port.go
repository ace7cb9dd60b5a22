package ports

import "github.com/jhoicas/catalogo-api/internal/application/dto"

// SheetRenderer genera la ficha imprimible (PDF) de una categoría con sus productos y artículos activos.
type SheetRenderer interface {
	RenderCategorySheet(sheet *dto.CategorySheet) ([]byte, error)
}

// FeedRenderer serializa el feed XML de artículos activos.
type FeedRenderer interface {
	RenderFeed(feed *dto.Feed) ([]byte, error)
}
