package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// CategoryHandler lectura pública de categorías y acciones enable/disable.
type CategoryHandler struct {
	uc      *usecase.CategoryUseCase
	cascade *cascade.UseCase
	paging  Paging
	log     *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, cascadeUC *cascade.UseCase, paging Paging, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, cascade: cascadeUC, paging: paging, log: log}
}

// List godoc
// @Summary      Listar categorías activas
// @Tags         category
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[dto.CategoryResponse]
// @Router       /api/category/ [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.paging.fromQuery(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría con sus productos activos
// @Tags         category
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/category/{id}/ [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Desactivar categoría (y todos sus productos)
// @Tags         category
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.ActionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/category/{id}/disable/ [post]
func (h *CategoryHandler) Disable(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	res, err := h.cascade.DisableCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(actionResponse(res))
}

// Enable godoc
// @Summary      Activar categoría (fuerza activos a todos sus productos)
// @Tags         category
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.ActionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/category/{id}/enable/ [post]
func (h *CategoryHandler) Enable(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	res, err := h.cascade.EnableCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(actionResponse(res))
}

func actionResponse(res *cascade.Result) dto.ActionResponse {
	return dto.ActionResponse{Status: "ok", Changed: res.Changed, ChildrenUpdated: res.ChildrenUpdated}
}
