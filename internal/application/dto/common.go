package dto

// Shape proyección de salida elegida por el handler según el endpoint.
type Shape int

const (
	// ShapeList plana, sin hijos anidados (listados).
	ShapeList Shape = iota
	// ShapeDetail incluye los hijos activos en forma de listado (GET por id).
	ShapeDetail
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero y recorta al máximo.
func (p *PageRequest) DefaultPage(def, max int) {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if max > 0 && p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse lista paginada: count es el total que cumple el filtro, results la página pedida.
type ListResponse[T any] struct {
	Count   int          `json:"count"`
	Results []T          `json:"results"`
	Page    PageResponse `json:"page"`
}

// ActionResponse acuse de las acciones enable/disable.
type ActionResponse struct {
	Status          string `json:"status"`
	Changed         bool   `json:"changed"`
	ChildrenUpdated int64  `json:"children_updated"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
