package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ArticleHandler lectura pública y escritura protegida de artículos.
type ArticleHandler struct {
	uc     *usecase.ArticleUseCase
	paging Paging
	log    *logger.Logger
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, paging Paging, log *logger.Logger) *ArticleHandler {
	return &ArticleHandler{uc: uc, paging: paging, log: log}
}

// List godoc
// @Summary      Listar artículos activos
// @Tags         article
// @Produce      json
// @Param        product_id  query  int  false  "Filtrar por producto"
// @Param        limit       query  int  false  "Límite"  default(20)
// @Param        offset      query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ListResponse[dto.ArticleResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/article/ [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	productID, err := queryInt64(c, "product_id")
	if err != nil {
		return invalidQuery(c, "product_id")
	}
	out, err := h.uc.List(c.UserContext(), dto.ArticleFilterRequest{ProductID: productID}, h.paging.fromQuery(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         article
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/article/{id}/ [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear artículo
// @Description  price >= 1.00 (máx. 99.99, 2 decimales); el producto debe estar activo.
// @Tags         article
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/article/ [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo (PUT o PATCH)
// @Tags         article
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/article/{id}/ [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	var in dto.UpdateArticleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo
// @Tags         article
// @Security     Bearer
// @Param        id   path  int  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/article/{id}/ [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
