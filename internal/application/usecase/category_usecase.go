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

// CategoryUseCase consultas de categorías y alta usada por el importador.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products}
}

// List devuelve solo categorías activas, por id ascendente.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.CategoryResponse], error) {
	filter := repository.CategoryFilter{Active: boolPtr(true)}
	total, err := uc.categories.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	list, err := uc.categories.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse[dto.CategoryResponse]{
		Count:   total,
		Results: dto.CategoryResponses(list),
		Page:    dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get obtiene una categoría sin filtrar por estado. Con ShapeDetail devuelve
// *dto.CategoryDetailResponse con los productos activos; con ShapeList, *dto.CategoryResponse.
func (uc *CategoryUseCase) Get(ctx context.Context, id int64, shape dto.Shape) (any, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	base := dto.NewCategoryResponse(c)
	switch shape {
	case dto.ShapeDetail:
		products, err := uc.activeProducts(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		return &dto.CategoryDetailResponse{CategoryResponse: base, Products: dto.ProductResponses(products)}, nil
	default:
		return &base, nil
	}
}

// Create da de alta una categoría. En modo estricto rechaza nombres duplicados,
// con palabras prohibidas o que no aparezcan en la descripción.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Strict {
		verr := &domain.ValidationError{Fields: entity.ValidateCategoryName(in.Name, in.Description, true)}
		existing, err := uc.categories.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			verr.Add("name", "ya existe una categoría con ese nombre")
		}
		if err := verr.OrNil(); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	c := &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear categoría: %w", err)
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

func (uc *CategoryUseCase) activeProducts(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	return uc.products.List(ctx, repository.ProductFilter{CategoryID: &categoryID, Active: boolPtr(true)}, 0, 0)
}
