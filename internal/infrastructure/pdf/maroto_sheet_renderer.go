// Package pdf genera la ficha imprimible de una categoría con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la categoría  │  N° + fecha de emisión    │
//	│  Descripción                                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  por producto: nombre + tabla Artículo | Descripción | Precio│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la URL del feed + leyenda                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
)

var _ ports.SheetRenderer = (*MarotoSheetRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoSheetRenderer implementa ports.SheetRenderer usando Maroto v2.
// feedURL, si no está vacío, se imprime como QR en el pie.
type MarotoSheetRenderer struct {
	author  string
	feedURL string
}

// NewMarotoSheetRenderer construye el renderer.
func NewMarotoSheetRenderer(author, feedURL string) *MarotoSheetRenderer {
	return &MarotoSheetRenderer{author: author, feedURL: feedURL}
}

// RenderCategorySheet genera el PDF y devuelve sus bytes.
func (g *MarotoSheetRenderer) RenderCategorySheet(sheet *dto.CategorySheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de categoría: "+sheet.Category.Name, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(sheet.Products) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("La categoría no tiene productos activos.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
	}
	for _, p := range sheet.Products {
		m.AddRows(productRow(p))
		m.AddRows(tableHeaderRow())
		m.AddRows(articleRows(p.Articles)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(g.feedURL)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet *dto.CategorySheet) core.Row {
	return row.New(22).Add(
		col.New(8).Add(
			text.New(sheet.Category.Name, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(sheet.Category.Description, "Sin descripción"), props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("FICHA DE CATEGORÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", sheet.Category.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitida: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func productRow(p dto.SheetProduct) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(p.Product.Name, props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Artículo", 4, align.Left),
		h("Descripción", 6, align.Left),
		h("Precio", 2, align.Right),
	)
}

func articleRows(articles []dto.ArticleResponse) []core.Row {
	if len(articles) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin artículos activos", props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
		))}
	}
	rows := make([]core.Row, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(a.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New(nonEmpty(a.Description, "—"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New("$"+a.Price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func footerRows(feedURL string) []core.Row {
	legend := text.New("Precios vigentes a la fecha de emisión. Solo se listan productos y artículos activos.",
		props.Text{Size: 7, Color: colorGray, Top: 2})
	if feedURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(legend))}
	}
	return []core.Row{
		row.New(30).Add(
			col.New(3).Add(code.NewQr(feedURL, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Escanea el código QR para ver el catálogo completo.", props.Text{
					Size: 8, Top: 6, Left: 3, Color: colorGray,
				}),
				text.New(feedURL, props.Text{Size: 7, Top: 14, Left: 3, Color: colorPrimary}),
			),
		),
		row.New(8).Add(col.New(12).Add(legend)),
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
