package dto

import "time"

// CategoryResponse forma de listado de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

// CategoryDetailResponse forma de detalle: agrega los productos activos.
type CategoryDetailResponse struct {
	CategoryResponse
	Products []ProductResponse `json:"products"`
}

// CreateCategoryRequest entrada del importador. Strict aplica las reglas de nombre
// (unicidad, palabras prohibidas, nombre presente en la descripción).
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Strict      bool   `json:"-"`
}
