package dto

import "time"

// ProductFilterRequest filtros de GET /product/ ya parseados por el handler.
// IncludeInactive=true devuelve SOLO los inactivos (no la unión).
type ProductFilterRequest struct {
	CategoryID      *int64
	IncludeInactive bool
}

// ProductResponse forma de listado de un producto.
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Category    int64     `json:"category"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// ProductDetailResponse forma de detalle: agrega los artículos activos.
type ProductDetailResponse struct {
	ProductResponse
	Articles []ArticleResponse `json:"articles"`
}

// EcoscoreResponse grade de Open Food Facts asociado al producto.
type EcoscoreResponse struct {
	Product  int64  `json:"product"`
	Ecoscore string `json:"ecoscore"`
}
