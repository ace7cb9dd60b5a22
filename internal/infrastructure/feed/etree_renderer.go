// Package feed serializa el catálogo público en XML con beevik/etree.
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<catalog title="..." generated="RFC3339">
//	  <item id="12" updated="RFC3339">
//	    <name>…</name><description>…</description>
//	    <price currency="EUR">3.50</price>
//	    <product id="4">Ananas</product>
//	    <category>Fruits</category>
//	  </item>
//	</catalog>
package feed

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
)

var _ ports.FeedRenderer = (*EtreeRenderer)(nil)

// EtreeRenderer implementa ports.FeedRenderer.
type EtreeRenderer struct {
	currency string
}

// NewEtreeRenderer construye el renderer; currency va como atributo de <price>.
func NewEtreeRenderer(currency string) *EtreeRenderer {
	return &EtreeRenderer{currency: currency}
}

// RenderFeed arma el documento e indenta con dos espacios.
func (r *EtreeRenderer) RenderFeed(feed *dto.Feed) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("catalog")
	root.CreateAttr("title", feed.Title)
	root.CreateAttr("generated", feed.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("count", strconv.Itoa(len(feed.Items)))

	for _, it := range feed.Items {
		item := root.CreateElement("item")
		item.CreateAttr("id", strconv.FormatInt(it.ArticleID, 10))
		item.CreateAttr("updated", it.UpdatedAt.UTC().Format(time.RFC3339))
		item.CreateElement("name").SetText(it.Name)
		if it.Description != "" {
			item.CreateElement("description").SetText(it.Description)
		}
		price := item.CreateElement("price")
		if r.currency != "" {
			price.CreateAttr("currency", r.currency)
		}
		price.SetText(it.Price)
		product := item.CreateElement("product")
		product.CreateAttr("id", strconv.FormatInt(it.ProductID, 10))
		product.SetText(it.ProductName)
		item.CreateElement("category").SetText(it.Category)
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("feed: escribir XML: %w", err)
	}
	return out.Bytes(), nil
}
