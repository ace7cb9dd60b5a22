package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ProductHandler lectura pública de productos, disable y ecoscore.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	cascade *cascade.UseCase
	paging  Paging
	log     *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, cascadeUC *cascade.UseCase, paging Paging, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, cascade: cascadeUC, paging: paging, log: log}
}

// List godoc
// @Summary      Listar productos
// @Description  Sin include_inactive devuelve solo activos; con include_inactive=true devuelve SOLO inactivos.
// @Tags         product
// @Produce      json
// @Param        category_id       query  int   false  "Filtrar por categoría"
// @Param        include_inactive  query  bool  false  "Devolver solo inactivos"
// @Param        limit             query  int   false  "Límite"  default(20)
// @Param        offset            query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/product/ [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	categoryID, err := queryInt64(c, "category_id")
	if err != nil {
		return invalidQuery(c, "category_id")
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return invalidQuery(c, "include_inactive")
	}
	filter := dto.ProductFilterRequest{CategoryID: categoryID, IncludeInactive: includeInactive}
	out, err := h.uc.List(c.UserContext(), filter, h.paging.fromQuery(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto con sus artículos activos
// @Tags         product
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product/{id}/ [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id, dto.ShapeDetail)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Disable godoc
// @Summary      Desactivar producto (y todos sus artículos)
// @Tags         product
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ActionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/product/{id}/disable/ [post]
func (h *ProductHandler) Disable(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	res, err := h.cascade.DisableProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(actionResponse(res))
}

// Ecoscore godoc
// @Summary      Ecoscore del producto (Open Food Facts)
// @Tags         product
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.EcoscoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/product/{id}/ecoscore/ [get]
func (h *ProductHandler) Ecoscore(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Ecoscore(c.UserContext(), id)
	if errors.Is(err, domain.ErrUpstream) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ECOSCORE_UNAVAILABLE", Message: "no se pudo consultar el ecoscore"})
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
