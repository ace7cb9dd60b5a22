package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites de precio: NUMERIC(4,2), mínimo 1.00.
var (
	MinArticlePrice = decimal.NewFromInt(1)
	MaxArticlePrice = decimal.RequireFromString("99.99")
)

// ArticlePriceScale decimales permitidos en el precio.
const ArticlePriceScale = 2

// Article variante vendible de un Product.
type Article struct {
	ID          int64
	ProductID   int64
	Name        string
	Description string
	Active      bool
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidatePrice devuelve un mensaje de error de campo o "" si el precio es válido.
func ValidatePrice(price decimal.Decimal) string {
	if price.LessThan(MinArticlePrice) {
		return "el precio debe ser mayor o igual a 1.00"
	}
	if price.GreaterThan(MaxArticlePrice) {
		return "el precio no puede superar 99.99"
	}
	if !price.Equal(price.Truncate(ArticlePriceScale)) {
		return "el precio admite como máximo 2 decimales"
	}
	return ""
}
