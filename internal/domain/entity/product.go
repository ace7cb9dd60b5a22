package entity

import "time"

// Product pertenece a exactamente una Category (borrado en cascada con su padre).
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Disable marca el producto como inactivo. Devuelve false si ya lo estaba.
// No existe Enable: un producto solo se reactiva a través de su categoría.
func (p *Product) Disable(now time.Time) bool {
	if !p.Active {
		return false
	}
	p.Active = false
	p.UpdatedAt = now
	return true
}
