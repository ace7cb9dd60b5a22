package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/export"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ExportHandler ficha PDF por categoría y feed XML.
type ExportHandler struct {
	uc  *export.UseCase
	log *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, log: log}
}

// CategorySheet godoc
// @Summary      Ficha PDF de la categoría
// @Tags         export
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/category/{id}/sheet.pdf [get]
func (h *ExportHandler) CategorySheet(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	pdf, filename, err := h.uc.CategorySheet(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// Feed godoc
// @Summary      Feed XML de artículos visibles
// @Tags         export
// @Produce      xml
// @Success      200  {string}  string
// @Router       /api/feed.xml [get]
func (h *ExportHandler) Feed(c *fiber.Ctx) error {
	out, err := h.uc.Feed(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
