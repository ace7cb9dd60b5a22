package dto

import "time"

// CategorySheet datos de la ficha PDF de una categoría (solo hijos activos).
type CategorySheet struct {
	Category    CategoryResponse
	Products    []SheetProduct
	GeneratedAt time.Time
}

// SheetProduct producto con sus artículos activos.
type SheetProduct struct {
	Product  ProductResponse
	Articles []ArticleResponse
}

// Feed catálogo publicado en /api/feed.xml.
type Feed struct {
	Title       string
	GeneratedAt time.Time
	Items       []FeedItem
}

// FeedItem un artículo activo con el contexto de su producto y categoría.
type FeedItem struct {
	ArticleID   int64
	Name        string
	Description string
	Price       string
	ProductID   int64
	ProductName string
	Category    string
	UpdatedAt   time.Time
}
