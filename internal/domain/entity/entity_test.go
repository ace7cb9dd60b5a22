package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func TestCategory_DisableEsIdempotente(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := &entity.Category{Active: true}

	assert.True(t, c.Disable(now))
	assert.False(t, c.Active)
	assert.Equal(t, now, c.UpdatedAt)

	assert.False(t, c.Disable(now.Add(time.Hour)), "segunda llamada es no-op")
	assert.Equal(t, now, c.UpdatedAt, "el no-op no toca date_updated")
}

func TestCategory_EnableEsIdempotente(t *testing.T) {
	c := &entity.Category{}
	assert.True(t, c.Enable(time.Now()))
	assert.True(t, c.Active)
	assert.False(t, c.Enable(time.Now()))
}

func TestProduct_Disable(t *testing.T) {
	p := &entity.Product{Active: true}
	assert.True(t, p.Disable(time.Now()))
	assert.False(t, p.Disable(time.Now()))
}

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		price string
		ok    bool
	}{
		{"0.99", false},
		{"1.00", true},
		{"1", true},
		{"99.99", true},
		{"100.00", false},
		{"1.005", false},
		{"-5", false},
	}
	for _, tc := range cases {
		msg := entity.ValidatePrice(decimal.RequireFromString(tc.price))
		if tc.ok {
			assert.Empty(t, msg, tc.price)
		} else {
			assert.NotEmpty(t, msg, tc.price)
		}
	}
}

func TestValidateCategoryName_PalabrasProhibidas(t *testing.T) {
	errs := entity.ValidateCategoryName("Super SPAM offers", "Super SPAM offers", false)
	assert.Contains(t, errs["name"], "spam")

	errs = entity.ValidateCategoryName("Advertisement", "", false)
	assert.Contains(t, errs["name"], "advertisement")

	assert.Empty(t, entity.ValidateCategoryName("Fruits", "", false))
}

func TestValidateCategoryName_NombreEnDescripcion(t *testing.T) {
	errs := entity.ValidateCategoryName("Légumes", "Des légumes frais", true)
	assert.Equal(t, "el nombre debe aparecer en la descripción", errs["description"])

	assert.Empty(t, entity.ValidateCategoryName("Légumes", "Nos Légumes frais", true))
}
