package generichtml

import (
	"html"
	"strings"
	"time"
)

// NavLink is one entry of the site navigation.
type NavLink struct {
	Href  string
	Label string
	Icon  string
}

const homeAnchor = "#quickstart"

var NavLinks = []NavLink{
	{Href: homeAnchor, Label: "Quick Start", Icon: "fas fa-rocket"},
	{Href: "/changelog", Label: "Changelog", Icon: "fas fa-history"},
	{Href: "/load-tests", Label: "Load Tests", Icon: "fas fa-chart-line"},
	{Href: "/access-request", Label: "Request Access", Icon: "fas fa-key"},
}

func isHomePath(path string) bool {
	return path == "/" || path == "/index.html"
}

// ActiveNavLink reports whether the link with href is highlighted on path.
// The root page highlights the quick start anchor; any other path highlights
// every link whose href it contains.
func ActiveNavLink(path, href string) bool {
	if isHomePath(path) {
		return href == homeAnchor
	}
	return strings.Contains(path, href)
}

func navAnchor(path string, link NavLink) HTMLElement {
	class := "nav-link"
	if ActiveNavLink(path, link.Href) {
		class += " active"
	}
	href := link.Href
	// The quick start anchor only scrolls in place on the home page.
	if href == homeAnchor && !isHomePath(path) {
		href = "/" + homeAnchor
	}
	return HTMLElement{
		Element:   "a",
		Params:    map[string]string{"class": class, "href": href},
		HTMLItems: []HTMLItem{Icon(link.Icon), Raw(" "), Text(link.Label)},
	}
}

// NewNavBar builds the fixed navbar and the mobile menu for path.
func NewNavBar(path string) HTMLElement {
	desktop := NewElement("div", "nav-menu")
	mobile := NewElement("div", "mobile-nav-menu")
	for _, link := range NavLinks {
		desktop.HTMLItems = append(desktop.HTMLItems, navAnchor(path, link))
		mobile.HTMLItems = append(mobile.HTMLItems, navAnchor(path, link))
	}

	brand := HTMLElement{
		Element:   "a",
		Params:    map[string]string{"class": "nav-brand", "href": "/"},
		HTMLItems: []HTMLItem{Icon("fas fa-book"), Raw(" "), Text("Composio Self-Hosted")},
	}
	toggle := HTMLElement{
		Element:   "button",
		Params:    map[string]string{"class": "mobile-nav-toggle", "type": "button", "aria-label": "Toggle navigation"},
		HTMLItems: []HTMLItem{Icon("fas fa-bars")},
	}

	return NewElement("nav", "navbar",
		NewElement("div", "nav-container", brand, desktop, toggle),
		mobile,
	)
}

// NotificationDismissAfter is how long a notification stays on screen.
const NotificationDismissAfter = 5 * time.Second

type NotificationKind string

const (
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient message overlay. Each one is dismissed on its
// own timer by the page script.
type Notification struct {
	Kind    NotificationKind
	Message string
}

func (n Notification) ToHTML() string {
	kind := n.Kind
	if kind == "" {
		kind = NotificationInfo
	}
	icon := "fas fa-info-circle"
	if kind == NotificationSuccess {
		icon = "fas fa-check-circle"
	}
	return HTMLElement{
		Element: "div",
		Params: map[string]string{
			"class":              "notification " + string(kind),
			"role":               "status",
			"data-dismiss-after": "5000",
		},
		HTMLItems: []HTMLItem{
			NewElement("div", "notification-content", Icon(icon), NewTextElement("span", "", n.Message)),
		},
	}.ToHTML()
}

// Modal is the overlay used by detail and help panels. The page script
// removes it on the close control or a click outside the content.
type Modal struct {
	Title string
	Body  []HTMLItem
}

func (m Modal) ToHTML() string {
	closeButton := HTMLElement{
		Element: "button",
		Params:  map[string]string{"class": "modal-close", "type": "button", "aria-label": "Close"},
		Text:    "&times;",
	}
	return NewElement("div", "modal",
		NewElement("div", "modal-content",
			NewElement("div", "modal-header", NewTextElement("h3", "", m.Title), closeButton),
			NewElement("div", "modal-body", m.Body...),
		),
	).ToHTML()
}

// CopyButton copies command to the clipboard when clicked.
func CopyButton(command string) HTMLElement {
	return HTMLElement{
		Element: "button",
		Params: map[string]string{
			"class":     "copy-btn",
			"type":      "button",
			"title":     "Copy to clipboard",
			"data-copy": command,
		},
		HTMLItems: []HTMLItem{Icon("fas fa-copy")},
	}
}

// CodeBlock shows a command with a copy button next to it.
func CodeBlock(command string) HTMLElement {
	return NewElement("div", "code-block",
		NewElement("pre", "", NewTextElement("code", "", command)),
		CopyButton(command),
	)
}

// StatusBadge renders a status as an upper-cased badge. The class is the
// status itself so unknown values still render.
func StatusBadge(status string) HTMLElement {
	return NewTextElement("span", "status-badge "+strings.ToLower(status), strings.ToUpper(status))
}

// Escape is shorthand for html.EscapeString.
func Escape(s string) string {
	return html.EscapeString(s)
}
