// Package extract pulls WebIDL blocks and CSS property definition tables
// out of saved spec HTML.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// idlSelector matches the containers specs use for their IDL fragments.
const idlSelector = "pre.idl, pre.webidl, script[type='text/plain-idl']"

// Property is one row of a propdef or descdef table: the property name and
// the raw value definition text.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Load parses spec HTML from a reader.
func Load(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing spec html: %w", err)
	}
	return doc, nil
}

// LoadFile parses spec HTML from a saved file.
func LoadFile(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// IDLBlocks collects the text of every IDL container in document order,
// skipping blocks that live inside example or note callouts, and joins
// them with blank lines so the result parses as one IDL fragment.
func IDLBlocks(doc *goquery.Document) string {
	var blocks []string
	doc.Find(idlSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Closest(".example, .note").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, "\n\n")
}

// Properties collects property and descriptor definitions from the spec's
// propdef/descdef tables. Each table contributes the names from its "Name"
// row paired with the text of its "Value" row. A name cell may define
// several comma-separated properties sharing one grammar. Specs that mark
// properties with bare <dfn data-dfn-type=property> instead of a table
// contribute those names too, paired with the definition-list value text
// when one follows.
func Properties(doc *goquery.Document) []Property {
	var props []Property
	seen := map[string]bool{}
	doc.Find("table.propdef, table.descdef").Each(func(_ int, table *goquery.Selection) {
		if table.Closest(".example, .note").Length() > 0 {
			return
		}
		names, value := propdefRows(table)
		for _, name := range names {
			seen[name] = true
			props = append(props, Property{Name: name, Value: value})
		}
	})
	doc.Find("dfn[data-dfn-type='property']").Each(func(_ int, dfn *goquery.Selection) {
		if dfn.Closest(".example, .note").Length() > 0 {
			return
		}
		if dfn.Closest("table.propdef, table.descdef").Length() > 0 {
			return
		}
		name := strings.TrimSpace(dfn.Text())
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		props = append(props, Property{Name: name, Value: dfnValue(dfn)})
	})
	return props
}

// dfnValue finds the grammar text for a dfn-declared property. Specs that
// skip the propdef table usually define the property in a <dl>, the value
// in the <dd> after the dfn's <dt>. Anything else yields an empty value,
// which callers surface as a missing grammar.
func dfnValue(dfn *goquery.Selection) string {
	dt := dfn.Closest("dt")
	if dt.Length() == 0 {
		return ""
	}
	return cellText(dt.NextFiltered("dd").First())
}

// propdefRows reads the name and value rows of one definition table.
func propdefRows(table *goquery.Selection) (names []string, value string) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := strings.TrimSpace(row.Find("th").First().Text())
		header = strings.TrimSuffix(strings.ToLower(header), ":")
		cell := cellText(row.Find("td").First())
		switch header {
		case "name":
			for _, n := range strings.Split(cell, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}
		case "value", "new values":
			if value == "" {
				value = cell
			}
		}
	})
	return names, value
}

// cellText flattens a table cell to single-line text. Value cells often
// wrap long grammars across lines.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
