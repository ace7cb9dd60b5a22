package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Category raíz de la jerarquía Category → Product → Article.
// Active inicia en false; solo los casos de uso de cascada lo modifican.
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Disable marca la categoría como inactiva. Devuelve false si ya lo estaba (no-op, no se persiste nada).
func (c *Category) Disable(now time.Time) bool {
	if !c.Active {
		return false
	}
	c.Active = false
	c.UpdatedAt = now
	return true
}

// Enable marca la categoría como activa. Devuelve false si ya lo estaba.
func (c *Category) Enable(now time.Time) bool {
	if c.Active {
		return false
	}
	c.Active = true
	c.UpdatedAt = now
	return true
}

// ForbiddenCategoryWords palabras prohibidas en nombres de categoría (coincidencia por subcadena, sin mayúsculas).
var ForbiddenCategoryWords = []string{"spam", "advertisement", "banned"}

// ValidateCategoryName aplica las reglas de nombre usadas por el importador.
// Con requireInDescription=true además exige que el nombre aparezca literal en la descripción.
// La unicidad del nombre se verifica en el caso de uso (necesita el repositorio).
func ValidateCategoryName(name, description string, requireInDescription bool) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = "el nombre es requerido"
		return errs
	}
	folded := cases.Fold().String(name)
	for _, word := range ForbiddenCategoryWords {
		if strings.Contains(folded, word) {
			errs["name"] = "el nombre contiene una palabra prohibida: " + word
			break
		}
	}
	if requireInDescription && !strings.Contains(description, name) {
		errs["description"] = "el nombre debe aparecer en la descripción"
	}
	return errs
}
