// Package catalogxml lee catálogos de demostración en XML.
//
// Formato:
//
//	<catalog>
//	  <category name="Fruits" active="true">
//	    <description>Fruits de saison</description>
//	    <product name="Ananas" active="true">
//	      <article name="Ananas 1kg" price="3.50" active="true"/>
//	    </product>
//	  </category>
//	  <user username="admin" password="secreto" role="admin"/>
//	</catalog>
//
// Acepta UTF-8 e ISO-8859-1 según la declaración XML.
package catalogxml

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Catalog árbol leído del XML.
type Catalog struct {
	Categories []Category
	Users      []User
}

type Category struct {
	Name        string
	Description string
	Active      bool
	Products    []Product
}

type Product struct {
	Name        string
	Description string
	Active      bool
	Articles    []Article
}

type Article struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Active      bool
}

type User struct {
	Username string
	Password string
	Role     string
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(label) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "UTF-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", label)
}

// Read parsea el catálogo completo.
func Read(r io.Reader) (*Catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	root := doc.SelectElement("catalog")
	if root == nil {
		return nil, fmt.Errorf("falta el elemento raíz <catalog>")
	}

	out := &Catalog{}
	for _, ce := range root.SelectElements("category") {
		c := Category{
			Name:        ce.SelectAttrValue("name", ""),
			Description: text(ce),
		}
		var err error
		if c.Active, err = boolAttr(ce); err != nil {
			return nil, err
		}
		for _, pe := range ce.SelectElements("product") {
			p := Product{Name: pe.SelectAttrValue("name", ""), Description: text(pe)}
			if p.Active, err = boolAttr(pe); err != nil {
				return nil, err
			}
			for _, ae := range pe.SelectElements("article") {
				a := Article{Name: ae.SelectAttrValue("name", ""), Description: text(ae)}
				if a.Active, err = boolAttr(ae); err != nil {
					return nil, err
				}
				raw := ae.SelectAttrValue("price", "")
				if a.Price, err = decimal.NewFromString(raw); err != nil {
					return nil, fmt.Errorf("artículo %q: precio inválido %q", a.Name, raw)
				}
				p.Articles = append(p.Articles, a)
			}
			c.Products = append(c.Products, p)
		}
		out.Categories = append(out.Categories, c)
	}
	for _, ue := range root.SelectElements("user") {
		out.Users = append(out.Users, User{
			Username: ue.SelectAttrValue("username", ""),
			Password: ue.SelectAttrValue("password", ""),
			Role:     ue.SelectAttrValue("role", "staff"),
		})
	}
	return out, nil
}

func text(el *etree.Element) string {
	if d := el.SelectElement("description"); d != nil {
		return strings.TrimSpace(d.Text())
	}
	return ""
}

// boolAttr lee active; ausente = false, como el default del modelo.
func boolAttr(el *etree.Element) (bool, error) {
	raw := el.SelectAttrValue("active", "")
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("<%s name=%q>: active inválido %q", el.Tag, el.SelectAttrValue("name", ""), raw)
	}
	return b, nil
}
