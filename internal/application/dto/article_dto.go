package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleFilterRequest filtros de GET /article/.
type ArticleFilterRequest struct {
	ProductID *int64
}

// CreateArticleRequest entrada para crear un artículo. El producto debe existir y estar activo.
type CreateArticleRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"2.50"`
	Product     int64           `json:"product" validate:"required,gt=0"`
	Active      *bool           `json:"active"`
}

// UpdateArticleRequest PUT/PATCH. Campos nil no se modifican.
type UpdateArticleRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string" example:"2.50"`
	Product     *int64           `json:"product" validate:"omitempty,gt=0"`
	Active      *bool            `json:"active"`
}

// ArticleResponse forma de listado (y de detalle) de un artículo. Price con 2 decimales.
type ArticleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	Price       string    `json:"price"`
	Product     int64     `json:"product"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}
