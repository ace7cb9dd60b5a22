package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// EcoscoreConfig parámetros de la consulta de ecoscore.
// ProductCode es el código de barras consultado (el catálogo no guarda EAN propio).
type EcoscoreConfig struct {
	ProductCode string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// ProductUseCase consultas de productos y ecoscore.
type ProductUseCase struct {
	products repository.ProductRepository
	articles repository.ArticleRepository
	lookup   ports.EcoscoreLookup
	cache    ports.GradeCache // opcional
	eco      EcoscoreConfig
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(
	products repository.ProductRepository,
	articles repository.ArticleRepository,
	lookup ports.EcoscoreLookup,
	cache ports.GradeCache,
	eco EcoscoreConfig,
	log *logger.Logger,
) *ProductUseCase {
	if eco.Timeout <= 0 {
		eco.Timeout = 5 * time.Second
	}
	return &ProductUseCase{
		products: products,
		articles: articles,
		lookup:   lookup,
		cache:    cache,
		eco:      eco,
		log:      log.Named("product"),
	}
}

// List aplica los filtros de GET /product/.
// Sin include_inactive devuelve solo activos; con include_inactive=true SOLO inactivos.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.ProductResponse], error) {
	filter := repository.ProductFilter{
		CategoryID: in.CategoryID,
		Active:     boolPtr(!in.IncludeInactive),
	}
	total, err := uc.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.products.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.ProductResponse]{
		Count:   total,
		Results: dto.ProductResponses(list),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get obtiene un producto sin filtrar por estado. Con ShapeDetail devuelve
// *dto.ProductDetailResponse con los artículos activos; con ShapeList, *dto.ProductResponse.
func (uc *ProductUseCase) Get(ctx context.Context, id int64, shape dto.Shape) (any, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	base := dto.NewProductResponse(p)
	switch shape {
	case dto.ShapeDetail:
		articles, err := uc.articles.List(ctx, repository.ArticleFilter{ProductID: &p.ID, Active: boolPtr(true)}, 0, 0)
		if err != nil {
			return nil, err
		}
		return &dto.ProductDetailResponse{ProductResponse: base, Articles: dto.ArticleResponses(articles)}, nil
	default:
		return &base, nil
	}
}

// Create da de alta un producto (importador). La categoría debe existir.
func (uc *ProductUseCase) Create(ctx context.Context, categoryID int64, name, description string, active bool) (*dto.ProductResponse, error) {
	now := time.Now()
	p := &entity.Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// Ecoscore consulta el grade del producto. Usa la cache si está configurada;
// un fallo de la cache no impide la consulta. Si el servicio externo falla devuelve domain.ErrUpstream.
func (uc *ProductUseCase) Ecoscore(ctx context.Context, id int64) (*dto.EcoscoreResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	code := uc.eco.ProductCode

	if uc.cache != nil {
		grade, ok, err := uc.cache.Get(ctx, code)
		if err != nil {
			uc.log.Warn().Err(err).Str("code", code).Msg("cache de ecoscore no disponible")
		} else if ok {
			return &dto.EcoscoreResponse{Product: p.ID, Ecoscore: grade}, nil
		}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, uc.eco.Timeout)
	defer cancel()
	grade, err := uc.lookup.Grade(lookupCtx, code)
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", p.ID).Str("code", code).Msg("consulta de ecoscore fallida")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if uc.cache != nil && uc.eco.CacheTTL > 0 {
		if err := uc.cache.Set(ctx, code, grade, uc.eco.CacheTTL); err != nil {
			uc.log.Warn().Err(err).Str("code", code).Msg("no se pudo guardar el ecoscore en cache")
		}
	}
	return &dto.EcoscoreResponse{Product: p.ID, Ecoscore: grade}, nil
}
