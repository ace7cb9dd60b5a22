package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ArticleUseCase consultas y escrituras de artículos.
type ArticleUseCase struct {
	articles repository.ArticleRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(articles repository.ArticleRepository, products repository.ProductRepository) *ArticleUseCase {
	return &ArticleUseCase{articles: articles, products: products, now: time.Now}
}

// List devuelve solo artículos activos, opcionalmente de un producto.
func (uc *ArticleUseCase) List(ctx context.Context, in dto.ArticleFilterRequest, page dto.PageRequest) (*dto.ListResponse[dto.ArticleResponse], error) {
	filter := repository.ArticleFilter{ProductID: in.ProductID, Active: boolPtr(true)}
	total, err := uc.articles.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.articles.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.ArticleResponse]{
		Count:   total,
		Results: dto.ArticleResponses(list),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get obtiene un artículo por id, sin filtrar por estado.
func (uc *ArticleUseCase) Get(ctx context.Context, id int64) (*dto.ArticleResponse, error) {
	a, err := uc.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewArticleResponse(a)
	return &out, nil
}

// Create valida precio y producto (existente y activo) y persiste el artículo.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	verr := &domain.ValidationError{}
	if msg := entity.ValidatePrice(in.Price); msg != "" {
		verr.Add("price", msg)
	}
	if msg, err := uc.checkProduct(ctx, in.Product); err != nil {
		return nil, err
	} else if msg != "" {
		verr.Add("product", msg)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now()
	a := &entity.Article{
		ProductID:   in.Product,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	if err := uc.articles.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("crear artículo: %w", err)
	}
	out := dto.NewArticleResponse(a)
	return &out, nil
}

// Update aplica los campos no nil. El precio se revalida; el producto solo si cambia.
// Activar el artículo exige que su producto esté activo.
func (uc *ArticleUseCase) Update(ctx context.Context, id int64, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	a, err := uc.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}

	verr := &domain.ValidationError{}
	productChecked := false
	if in.Price != nil {
		if msg := entity.ValidatePrice(*in.Price); msg != "" {
			verr.Add("price", msg)
		}
		a.Price = *in.Price
	}
	if in.Product != nil && *in.Product != a.ProductID {
		msg, err := uc.checkProduct(ctx, *in.Product)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			verr.Add("product", msg)
		}
		a.ProductID = *in.Product
		productChecked = true
	}
	if in.Active != nil && *in.Active && !productChecked {
		msg, err := uc.checkProduct(ctx, a.ProductID)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			verr.Add("active", "no se puede activar: "+msg)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	a.UpdatedAt = uc.now()
	if err := uc.articles.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("actualizar artículo %d: %w", id, err)
	}
	out := dto.NewArticleResponse(a)
	return &out, nil
}

// Delete elimina el artículo. ErrNotFound si no existe.
func (uc *ArticleUseCase) Delete(ctx context.Context, id int64) error {
	a, err := uc.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.articles.Delete(ctx, id)
}

// checkProduct devuelve un mensaje de campo si el producto no existe o está inactivo.
func (uc *ArticleUseCase) checkProduct(ctx context.Context, productID int64) (string, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "el producto no existe", nil
	}
	if !p.Active {
		return "el producto está inactivo", nil
	}
	return "", nil
}
