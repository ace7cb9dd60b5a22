package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/export"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/feed"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

type fakeLookup struct{ err error }

func (f fakeLookup) Grade(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "d", nil
}

type testServer struct {
	app   *fiber.App
	store *memory.Store
	ids   map[string]int64
}

// newServer arma la API completa sobre el store en memoria con:
// Fruits (activa): Ananas (activo, artículo "Ananas 1kg" activo), Banane (inactivo)
// Archivo (inactiva)
func newServer(t *testing.T, lookup fakeLookup) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cats := memory.NewCategoryRepository(store)
	prods := memory.NewProductRepository(store)
	arts := memory.NewArticleRepository(store)
	users := memory.NewUserRepository(store)
	log := logger.Nop()

	ids := map[string]int64{}
	for _, c := range []*entity.Category{{Name: "Fruits", Active: true}, {Name: "Archivo"}} {
		require.NoError(t, cats.Create(ctx, c))
		ids[c.Name] = c.ID
	}
	for _, p := range []*entity.Product{
		{CategoryID: ids["Fruits"], Name: "Ananas", Active: true},
		{CategoryID: ids["Fruits"], Name: "Banane"},
	} {
		require.NoError(t, prods.Create(ctx, p))
		ids[p.Name] = p.ID
	}
	a := &entity.Article{ProductID: ids["Ananas"], Name: "Ananas 1kg", Active: true, Price: decimal.RequireFromString("3.5")}
	require.NoError(t, arts.Create(ctx, a))
	ids[a.Name] = a.ID

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 5, RefreshExpMinutes: 60, Issuer: testIssuer})
	_, err := authUC.RegisterUser(ctx, "staff", "s3cret!", entity.RoleStaff)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(cats, prods),
		ProductUC:  usecase.NewProductUseCase(prods, arts, lookup, nil, usecase.EcoscoreConfig{ProductCode: "3229820787015"}, log),
		ArticleUC:  usecase.NewArticleUseCase(arts, prods),
		CascadeUC:  cascade.NewUseCase(memory.NewTxRunner(store), log),
		ExportUC:   export.NewUseCase(cats, prods, arts, pdf.NewMarotoSheetRenderer("test", ""), feed.NewEtreeRenderer("EUR"), "Catálogo"),
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
		Paging:     apphttp.Paging{Default: 20, Max: 100},
		Logger:     log,
	})
	return &testServer{app: app, store: store, ids: ids}
}

func (s *testServer) do(t *testing.T, method, path, body, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type listBody struct {
	Count   int              `json:"count"`
	Results []map[string]any `json:"results"`
}

func names(l listBody) []string {
	out := make([]string, 0, len(l.Results))
	for _, r := range l.Results {
		out = append(out, r["name"].(string))
	}
	return out
}

func path(format string, id int64) string {
	return strings.Replace(format, "{id}", jsonNumber(id), 1)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryList_SoloActivasConFormaPlana(t *testing.T) {
	s := newServer(t, fakeLookup{})
	resp := s.do(t, http.MethodGet, "/api/category/", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, resp)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, []string{"Fruits"}, names(body))
	for _, key := range []string{"id", "name", "description", "active", "date_created", "date_updated"} {
		assert.Contains(t, body.Results[0], key)
	}
	assert.NotContains(t, body.Results[0], "products", "el listado no anida hijos")
}

func TestCategoryDetail_FruitsSoloAnanas(t *testing.T) {
	s := newServer(t, fakeLookup{})
	resp := s.do(t, http.MethodGet, path("/api/category/{id}/", s.ids["Fruits"]), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	type productLine struct {
		Name     string `json:"name"`
		Category int64  `json:"category"`
	}
	body := decode[struct {
		Name     string        `json:"name"`
		Products []productLine `json:"products"`
	}](t, resp)
	assert.Equal(t, "Fruits", body.Name)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Ananas", body.Products[0].Name)
	assert.Equal(t, s.ids["Fruits"], body.Products[0].Category)
}

func TestCategoryDetail_InactivaVisiblePorID(t *testing.T) {
	s := newServer(t, fakeLookup{})
	resp := s.do(t, http.MethodGet, path("/api/category/{id}/", s.ids["Archivo"]), "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDetail_NoExisteYIDInvalido(t *testing.T) {
	s := newServer(t, fakeLookup{})
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/category/999/", "", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/product/999/", "", "").StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/article/999/", "", "").StatusCode)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/product/abc/", "", "").StatusCode)
}

func TestProductList_Filtros(t *testing.T) {
	s := newServer(t, fakeLookup{})

	body := decode[listBody](t, s.do(t, http.MethodGet, "/api/product/", "", ""))
	assert.Equal(t, []string{"Ananas"}, names(body))

	body = decode[listBody](t, s.do(t, http.MethodGet, "/api/product/?include_inactive=true", "", ""))
	assert.Equal(t, []string{"Banane"}, names(body), "include_inactive devuelve solo inactivos")

	body = decode[listBody](t, s.do(t, http.MethodGet, "/api/product/?include_inactive=0", "", ""))
	assert.Equal(t, []string{"Ananas"}, names(body))

	body = decode[listBody](t, s.do(t, http.MethodGet, path("/api/product/?category_id={id}", s.ids["Archivo"]), "", ""))
	assert.Empty(t, body.Results)
	assert.NotNil(t, body.Results, "results vacío se serializa como []")
}

func TestProductList_QueryInvalida(t *testing.T) {
	s := newServer(t, fakeLookup{})

	resp := s.do(t, http.MethodGet, "/api/product/?category_id=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUERY", decode[map[string]any](t, resp)["code"])

	resp = s.do(t, http.MethodGet, "/api/product/?include_inactive=quizas", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/article/?product_id=x", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProductDetail_ArticulosConPrecioFijo(t *testing.T) {
	s := newServer(t, fakeLookup{})
	resp := s.do(t, http.MethodGet, path("/api/product/{id}/", s.ids["Ananas"]), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	articles := body["articles"].([]any)
	require.Len(t, articles, 1)
	assert.Equal(t, "3.50", articles[0].(map[string]any)["price"])
}

func TestArticleList(t *testing.T) {
	s := newServer(t, fakeLookup{})
	body := decode[listBody](t, s.do(t, http.MethodGet, path("/api/article/?product_id={id}", s.ids["Ananas"]), "", ""))
	assert.Equal(t, []string{"Ananas 1kg"}, names(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// 405
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryYProducto_MetodosNoPermitidos(t *testing.T) {
	s := newServer(t, fakeLookup{})
	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/category/"},
		{http.MethodPut, path("/api/category/{id}/", s.ids["Fruits"])},
		{http.MethodPatch, path("/api/category/{id}/", s.ids["Fruits"])},
		{http.MethodDelete, path("/api/category/{id}/", s.ids["Fruits"])},
		{http.MethodPost, "/api/product/"},
		{http.MethodPut, path("/api/product/{id}/", s.ids["Ananas"])},
		{http.MethodDelete, path("/api/product/{id}/", s.ids["Ananas"])},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := s.do(t, tc.method, tc.path, `{"name":"x"}`, tokenForRole(t, "admin"))
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Allow"), "GET")
		})
	}

	// nada se borró
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path("/api/category/{id}/", s.ids["Fruits"]), "", "").StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cascada
// ──────────────────────────────────────────────────────────────────────────────

func TestDisableCategory_RequiereAuth(t *testing.T) {
	s := newServer(t, fakeLookup{})
	p := path("/api/category/{id}/disable/", s.ids["Fruits"])

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, p, "", "").StatusCode)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, p, "", tokenForRole(t, "customer")).StatusCode)

	body := decode[listBody](t, s.do(t, http.MethodGet, "/api/category/", "", ""))
	assert.Equal(t, []string{"Fruits"}, names(body), "sin autorización no cambia nada")
}

func TestDisableCategory_FruitsDesapareceYAnanasInactivo(t *testing.T) {
	s := newServer(t, fakeLookup{})

	resp := s.do(t, http.MethodPost, path("/api/category/{id}/disable/", s.ids["Fruits"]), "", tokenForRole(t, "staff"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ack := decode[map[string]any](t, resp)
	assert.Equal(t, true, ack["changed"])
	assert.EqualValues(t, 2, ack["children_updated"])

	body := decode[listBody](t, s.do(t, http.MethodGet, "/api/category/", "", ""))
	assert.NotContains(t, names(body), "Fruits")

	product := decode[map[string]any](t, s.do(t, http.MethodGet, path("/api/product/{id}/", s.ids["Ananas"]), "", ""))
	assert.Equal(t, false, product["active"])
	assert.Len(t, product["articles"], 1, "los artículos no se tocan al desactivar la categoría")

	again := decode[map[string]any](t, s.do(t, http.MethodPost, path("/api/category/{id}/disable/", s.ids["Fruits"]), "", tokenForRole(t, "staff")))
	assert.Equal(t, false, again["changed"])
}

func TestEnableCategory_ReactivaTodosLosProductos(t *testing.T) {
	s := newServer(t, fakeLookup{})
	tok := tokenForRole(t, "admin")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, path("/api/category/{id}/disable/", s.ids["Fruits"]), "", tok).StatusCode)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, path("/api/category/{id}/enable/", s.ids["Fruits"]), "", tok).StatusCode)

	body := decode[listBody](t, s.do(t, http.MethodGet, path("/api/product/?category_id={id}", s.ids["Fruits"]), "", ""))
	assert.Equal(t, []string{"Ananas", "Banane"}, names(body))
}

func TestDisableProduct_CascadaAArticulos(t *testing.T) {
	s := newServer(t, fakeLookup{})

	resp := s.do(t, http.MethodPost, path("/api/product/{id}/disable/", s.ids["Ananas"]), "", tokenForRole(t, "admin"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, s.do(t, http.MethodGet, "/api/article/", "", ""))
	assert.Empty(t, body.Results)

	resp = s.do(t, http.MethodPost, "/api/product/999/disable/", "", tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestArticleCreate_Validaciones(t *testing.T) {
	s := newServer(t, fakeLookup{})
	tok := tokenForRole(t, "staff")
	ananas := jsonNumber(s.ids["Ananas"])

	resp := s.do(t, http.MethodPost, "/api/article/", `{"name":"Ananas 2kg","price":"0.99","product":`+ananas+`}`, tok)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[map[string]any](t, resp)
	assert.Equal(t, "VALIDATION", errBody["code"])
	assert.Contains(t, errBody["fields"], "price")

	resp = s.do(t, http.MethodPost, "/api/article/", `{"name":"Ananas 2kg","price":"1.00","product":`+ananas+`,"active":true}`, tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	assert.Equal(t, "1.00", created["price"])

	resp = s.do(t, http.MethodPost, "/api/article/", `{"name":"Banane 1kg","price":2,"product":`+jsonNumber(s.ids["Banane"])+`}`, tok)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]any](t, resp)["fields"], "product")

	resp = s.do(t, http.MethodPost, "/api/article/", `{"price":"2.00","product":`+ananas+`}`, tok)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]any](t, resp)["fields"], "name")

	resp = s.do(t, http.MethodPost, "/api/article/", `{"name":`, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/article/", `{"name":"x","price":"2.00","product":`+ananas+`}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestArticleCreate_LargoDelNombre(t *testing.T) {
	s := newServer(t, fakeLookup{})
	tok := tokenForRole(t, "staff")
	ananas := jsonNumber(s.ids["Ananas"])

	resp := s.do(t, http.MethodPost, "/api/article/", `{"name":"`+strings.Repeat("a", 255)+`","price":"2.00","product":`+ananas+`}`, tok)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/article/", `{"name":"`+strings.Repeat("a", 256)+`","price":"2.00","product":`+ananas+`}`, tok)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]any](t, resp)["fields"], "name")
}

func TestArticleUpdate_ActivarBajoProductoInactivo(t *testing.T) {
	s := newServer(t, fakeLookup{})
	tok := tokenForRole(t, "admin")
	a := &entity.Article{ProductID: s.ids["Banane"], Name: "Banane 1kg", Price: decimal.RequireFromString("2")}
	require.NoError(t, memory.NewArticleRepository(s.store).Create(context.Background(), a))

	resp := s.do(t, http.MethodPatch, path("/api/article/{id}/", a.ID), `{"active":true}`, tok)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]any](t, resp)["fields"], "active")
}

func TestArticleUpdateYDelete(t *testing.T) {
	s := newServer(t, fakeLookup{})
	tok := tokenForRole(t, "admin")
	p := path("/api/article/{id}/", s.ids["Ananas 1kg"])

	resp := s.do(t, http.MethodPatch, p, `{"price":"4.2"}`, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4.20", decode[map[string]any](t, resp)["price"])

	resp = s.do(t, http.MethodPut, p, `{"price":"0.5"}`, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, p, "", tok).StatusCode)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, p, "", "").StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Extras
// ──────────────────────────────────────────────────────────────────────────────

func TestEcoscore(t *testing.T) {
	s := newServer(t, fakeLookup{})
	resp := s.do(t, http.MethodGet, path("/api/product/{id}/ecoscore/", s.ids["Ananas"]), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "d", body["ecoscore"])
	assert.EqualValues(t, s.ids["Ananas"], body["product"])
}

func TestEcoscore_ServicioCaido(t *testing.T) {
	s := newServer(t, fakeLookup{err: errors.New("dial tcp: timeout")})
	resp := s.do(t, http.MethodGet, path("/api/product/{id}/ecoscore/", s.ids["Ananas"]), "", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "ECOSCORE_UNAVAILABLE", decode[map[string]any](t, resp)["code"])
}

func TestToken_YUsoEnEscritura(t *testing.T) {
	s := newServer(t, fakeLookup{})

	resp := s.do(t, http.MethodPost, "/api/token/", `{"username":"staff","password":"s3cret!"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := decode[map[string]string](t, resp)
	require.NotEmpty(t, pair["access"])
	require.NotEmpty(t, pair["refresh"])

	resp = s.do(t, http.MethodPost, path("/api/product/{id}/disable/", s.ids["Ananas"]), "", "Bearer "+pair["access"])
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/token/refresh/", `{"refresh":"`+pair["refresh"]+`"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[map[string]string](t, resp)["access"])

	resp = s.do(t, http.MethodPost, "/api/token/", `{"username":"staff","password":"mal"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFeedYFicha(t *testing.T) {
	s := newServer(t, fakeLookup{})

	resp := s.do(t, http.MethodGet, "/api/feed.xml", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "<name>Ananas 1kg</name>")

	resp = s.do(t, http.MethodGet, path("/api/category/{id}/sheet.pdf", s.ids["Fruits"]), "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = s.do(t, http.MethodGet, "/api/category/999/sheet.pdf", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRutaInexistente(t *testing.T) {
	s := newServer(t, fakeLookup{})
	resp := s.do(t, http.MethodGet, "/api/nada/", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[map[string]any](t, resp)["code"])
}
