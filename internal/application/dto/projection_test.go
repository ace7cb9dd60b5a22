package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func TestFormatPrice_DosDecimales(t *testing.T) {
	assert.Equal(t, "3.50", FormatPrice(decimal.RequireFromString("3.5")))
	assert.Equal(t, "1.00", FormatPrice(decimal.NewFromInt(1)))
	assert.Equal(t, "99.99", FormatPrice(decimal.RequireFromString("99.99")))
}

func TestNewArticleResponse(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	out := NewArticleResponse(&entity.Article{
		ID: 7, ProductID: 3, Name: "Ananas 1kg", Active: true,
		Price: decimal.RequireFromString("4.2"), CreatedAt: now, UpdatedAt: now,
	})
	assert.Equal(t, "4.20", out.Price)
	assert.Equal(t, int64(3), out.Product)
	assert.Equal(t, now, out.DateUpdated)
}

func TestResponses_ListaVaciaNoEsNil(t *testing.T) {
	assert.NotNil(t, CategoryResponses(nil))
	assert.NotNil(t, ProductResponses(nil))
	assert.NotNil(t, ArticleResponses(nil))
}
