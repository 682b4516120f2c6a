package generichtml

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

type HTMLItem interface {
	ToHTML() string
}

// Text is a plain string item, escaped on output.
type Text string

func (t Text) ToHTML() string {
	return html.EscapeString(string(t))
}

// Raw is trusted markup written as-is.
type Raw string

func (r Raw) ToHTML() string {
	return string(r)
}

// HTMLElement renders an element. Params are escaped; Text is trusted
// markup and is only used when there are no HTMLItems.
type HTMLElement struct {
	Params    map[string]string
	Text      string
	HTMLItems []HTMLItem
	Element   string
}

var voidElements = sets.New[string]("br", "hr", "img", "input", "meta", "link")

func (t HTMLElement) ToHTML() string {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "<%s", t.Element)

	// Order param keys
	for _, paramKey := range sets.List(sets.KeySet(t.Params)) {
		fmt.Fprintf(sb, ` %s="%s"`, paramKey, html.EscapeString(t.Params[paramKey]))
	}

	sb.WriteString(">")
	if voidElements.Has(t.Element) {
		return sb.String()
	}

	if len(t.HTMLItems) != 0 {
		for _, item := range t.HTMLItems {
			sb.WriteString(item.ToHTML())
		}
	} else {
		sb.WriteString(t.Text)
	}

	fmt.Fprintf(sb, "</%s>", t.Element)

	return sb.String()
}

// NewElement is shorthand for an element with a class and children.
func NewElement(element, class string, items ...HTMLItem) HTMLElement {
	t := HTMLElement{Element: element, Params: map[string]string{}, HTMLItems: items}
	if class != "" {
		t.Params["class"] = class
	}
	return t
}

// NewTextElement is an element holding escaped text.
func NewTextElement(element, class, text string) HTMLElement {
	return NewElement(element, class, Text(text))
}

// Icon renders a Font Awesome icon.
func Icon(class string) HTMLElement {
	return HTMLElement{Element: "i", Params: map[string]string{"class": class}}
}

// Items adapts a slice of elements to items.
func Items(elements []HTMLElement) []HTMLItem {
	items := make([]HTMLItem, 0, len(elements))
	for _, e := range elements {
		items = append(items, e)
	}
	return items
}

func NewHTMLLinkWithParams(text string, linkURL *url.URL, params map[string]string) HTMLElement {

	t := HTMLElement{
		Element: "a",
		Text:    html.EscapeString(text),
		Params:  map[string]string{},
	}

	for k, v := range params {
		t.Params[k] = v
	}

	_, ok := t.Params["href"]
	if ok {
		return t
	}

	t.Params["href"] = linkURL.String()
	return t
}

func NewHTMLLink(text string, linkURL *url.URL) HTMLElement {
	return NewHTMLLinkWithParams(
		text,
		linkURL,
		map[string]string{
			"href": linkURL.String(),
		})
}

type HTMLTableHeaderRowItem struct {
	Text      string
	HTMLItems []HTMLItem
	Params    map[string]string
}

func (r HTMLTableHeaderRowItem) ToHTML() string {
	t := HTMLElement{
		Element:   "th",
		Params:    r.Params,
		Text:      r.Text,
		HTMLItems: r.HTMLItems,
	}

	return t.ToHTML()
}

type HTMLTableRowItem struct {
	Text      string
	HTMLItems []HTMLItem
	Params    map[string]string
}

func (r HTMLTableRowItem) ToHTML() string {
	t := HTMLElement{
		Element:   "td",
		Params:    r.Params,
		HTMLItems: r.HTMLItems,
		Text:      r.Text,
	}

	return t.ToHTML()
}

type HTMLTableRow struct {
	items  []HTMLItem
	params map[string]string
}

func NewHTMLTableRowWithItems(p map[string]string, items []HTMLItem) HTMLTableRow {
	return HTMLTableRow{
		items:  items,
		params: p,
	}
}

func NewHTMLTableRow(p map[string]string) HTMLTableRow {
	return HTMLTableRow{
		params: p,
	}
}

func (r *HTMLTableRow) AddItems(items []HTMLItem) {
	r.items = append(r.items, items...)
}

func (r HTMLTableRow) ToHTML() string {
	sb := strings.Builder{}
	sb.WriteString("\n  ")
	for _, item := range r.items {
		fmt.Fprintf(&sb, "  %s\n  ", item.ToHTML())
	}

	t := HTMLElement{
		Element: "tr",
		Params:  r.params,
		Text:    sb.String(),
	}

	return fmt.Sprintf("  %s\n", t.ToHTML())
}

type HTMLTable struct {
	headerRows []HTMLTableRow
	rows       []HTMLTableRow
	params     map[string]string
	bodyParams map[string]string
}

func NewHTMLTable(p map[string]string) HTMLTable {
	return HTMLTable{
		params: p,
	}
}

// SetBodyParams wraps data rows in a tbody with the given params, so the
// body can be replaced on its own.
func (h *HTMLTable) SetBodyParams(p map[string]string) {
	h.bodyParams = p
}

func (h *HTMLTable) AddHeaderRow(headerRow HTMLTableRow) {
	h.headerRows = append(h.headerRows, headerRow)
}

func (h *HTMLTable) AddRow(row HTMLTableRow) {
	h.rows = append(h.rows, row)
}

// RowsHTML renders only the data rows.
func (h HTMLTable) RowsHTML() string {
	sb := &strings.Builder{}
	for _, row := range h.rows {
		sb.WriteString(row.ToHTML())
	}
	return sb.String()
}

func (h HTMLTable) ToHTML() string {
	sb := &strings.Builder{}
	sb.WriteString("\n")

	for _, row := range h.headerRows {
		sb.WriteString(row.ToHTML())
	}

	if h.bodyParams != nil {
		body := HTMLElement{Element: "tbody", Params: h.bodyParams, Text: "\n" + h.RowsHTML()}
		sb.WriteString(body.ToHTML())
	} else {
		sb.WriteString(h.RowsHTML())
	}

	t := HTMLElement{
		Element: "table",
		Params:  h.params,
		Text:    sb.String(),
	}

	return t.ToHTML()
}
