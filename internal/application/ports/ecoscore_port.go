package ports

import (
	"context"
	"time"
)

// EcoscoreLookup define el puerto de salida hacia el servicio de datos alimentarios.
// Devuelve el grade (a..e) del código de barras indicado o un error si el servicio
// no responde o la respuesta no trae el campo. El contexto debe llevar timeout.
type EcoscoreLookup interface {
	Grade(ctx context.Context, code string) (string, error)
}

// GradeCache cache opcional de grades. Get devuelve ("", false, nil) en un miss.
type GradeCache interface {
	Get(ctx context.Context, code string) (string, bool, error)
	Set(ctx context.Context, code, grade string, ttl time.Duration) error
}
