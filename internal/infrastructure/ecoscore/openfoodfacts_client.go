// Package ecoscore consulta el ecoscore de Open Food Facts y cachea los grades en Redis.
package ecoscore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa EcoscoreLookup.
var _ ports.EcoscoreLookup = (*Client)(nil)

// DefaultBaseURL API v0 de Open Food Facts.
const DefaultBaseURL = "https://world.openfoodfacts.org/api/v0"

// Client adaptador de ports.EcoscoreLookup sobre net/http.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. baseURL vacío usa DefaultBaseURL.
// timeout es el límite de red; el caso de uso impone además su propio context.WithTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product *struct {
		EcoscoreGrade string `json:"ecoscore_grade"`
	} `json:"product"`
}

// Grade hace GET <baseURL>/product/<code>.json y devuelve product.ecoscore_grade.
func (c *Client) Grade(ctx context.Context, code string) (string, error) {
	url := fmt.Sprintf("%s/product/%s.json", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("ecoscore: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("ecoscore: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("ecoscore: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ecoscore: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ecoscore: HTTP %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("ecoscore: deserializar respuesta: %w", err)
	}
	if body.Product == nil || body.Product.EcoscoreGrade == "" {
		return "", fmt.Errorf("ecoscore: la respuesta no trae product.ecoscore_grade")
	}
	return body.Product.EcoscoreGrade, nil
}
