package generichtml_test

import (
	"net/url"
	"testing"

	"github.com/composio/docsite/pkg/html/generichtml"
)

func TestHTMLTable(t *testing.T) {
	table := generichtml.NewHTMLTable(map[string]string{
		"class": "table",
	})

	headerRow := generichtml.NewHTMLTableRow(map[string]string{
		"class": "header",
	})

	headerRow.AddItems([]generichtml.HTMLItem{
		generichtml.HTMLTableHeaderRowItem{
			Text: "Name",
		},
		generichtml.HTMLTableHeaderRowItem{
			Text: "Count",
		},
		generichtml.HTMLTableHeaderRowItem{
			Text: "Link",
		},
	})

	table.AddHeaderRow(headerRow)

	items := []struct {
		name  string
		count string
		link  generichtml.HTMLItem
	}{
		{
			name:  "load-1",
			count: "1",
			link: generichtml.NewHTMLLink("load-1", &url.URL{
				Scheme: "https",
				Host:   "docs.composio.dev",
				Path:   "/load-1",
			}),
		},
		{
			name:  "load-2",
			count: "2",
			link: generichtml.NewHTMLLink("load-2", &url.URL{
				Scheme: "https",
				Host:   "docs.composio.dev",
				Path:   "/load-2",
			}),
		},
	}

	for _, item := range items {
		row := generichtml.NewHTMLTableRow(map[string]string{})

		row.AddItems([]generichtml.HTMLItem{
			generichtml.HTMLTableRowItem{
				Text: item.name,
			},
			generichtml.HTMLTableRowItem{
				Text: item.count,
			},
			generichtml.HTMLTableRowItem{
				HTMLItems: []generichtml.HTMLItem{
					item.link,
				},
			},
		})

		table.AddRow(row)
	}

	expected := `<table class="table">
  <tr class="header">
    <th>Name</th>
    <th>Count</th>
    <th>Link</th>
  </tr>
  <tr>
    <td>load-1</td>
    <td>1</td>
    <td><a href="https://docs.composio.dev/load-1">load-1</a></td>
  </tr>
  <tr>
    <td>load-2</td>
    <td>2</td>
    <td><a href="https://docs.composio.dev/load-2">load-2</a></td>
  </tr>
</table>`

	result := table.ToHTML()
	if result != expected {
		t.Errorf("expected %s, got: %s", expected, result)
	}
}

func TestHTMLLink(t *testing.T) {
	htmlLink := generichtml.NewHTMLLinkWithParams(
		"Docs & Guides",
		&url.URL{
			Scheme: "https",
			Host:   "docs.composio.dev",
		},
		map[string]string{
			"class": "a-link",
		})

	results := htmlLink.ToHTML()

	expected := `<a class="a-link" href="https://docs.composio.dev">Docs &amp; Guides</a>`

	if results != expected {
		t.Errorf("expected: %s, got: %s", expected, results)
	}
}

func TestHTMLTableBody(t *testing.T) {
	table := generichtml.NewHTMLTable(map[string]string{"class": "results"})
	table.SetBodyParams(map[string]string{"id": "rows"})
	table.AddRow(generichtml.NewHTMLTableRowWithItems(nil, []generichtml.HTMLItem{
		generichtml.HTMLTableRowItem{HTMLItems: []generichtml.HTMLItem{generichtml.Text("0.5%")}},
	}))

	expected := `<table class="results">
<tbody id="rows">
  <tr>
    <td>0.5%</td>
  </tr>
</tbody></table>`
	if result := table.ToHTML(); result != expected {
		t.Errorf("expected %s, got: %s", expected, result)
	}
}

func TestHTMLElementEscaping(t *testing.T) {
	e := generichtml.HTMLElement{
		Element:   "div",
		Params:    map[string]string{"title": `"quoted" <b>`},
		HTMLItems: []generichtml.HTMLItem{generichtml.Text("<script>alert(1)</script>")},
	}
	expected := `<div title="&#34;quoted&#34; &lt;b&gt;">&lt;script&gt;alert(1)&lt;/script&gt;</div>`
	if result := e.ToHTML(); result != expected {
		t.Errorf("expected %s, got: %s", expected, result)
	}
}
