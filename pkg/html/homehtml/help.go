package homehtml

import (
	"strconv"

	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/reference"
)

func sectionHTML(s reference.Section) generichtml.HTMLElement {
	listElement := "ul"
	if s.Ordered {
		listElement = "ol"
	}
	list := generichtml.NewElement(listElement, "")
	for _, item := range s.Items {
		li := generichtml.NewElement("li", "", generichtml.Text(item.Text))
		if item.Command != "" {
			li.HTMLItems = append(li.HTMLItems,
				generichtml.Raw(" "),
				generichtml.NewTextElement("code", "", item.Command),
				generichtml.CopyButton(item.Command),
			)
		}
		list.HTMLItems = append(list.HTMLItems, li)
	}
	return generichtml.NewElement("div", "", generichtml.NewTextElement("h4", "", s.Heading), list)
}

// QuickFixModal renders the help overlay for a troubleshooting category.
func QuickFixModal(fix reference.QuickFix) string {
	content := generichtml.NewElement("div", "quick-fix-content")
	for _, s := range fix.Sections {
		content.HTMLItems = append(content.HTMLItems, sectionHTML(s))
	}
	return generichtml.Modal{Title: fix.Title, Body: []generichtml.HTMLItem{content}}.ToHTML()
}

// ServiceModal renders the info overlay for one service.
func ServiceModal(svc reference.Service) string {
	content := generichtml.NewElement("div", "service-info-content",
		generichtml.NewTextElement("p", "service-description", svc.Description),
	)
	if svc.Port != 0 {
		content.HTMLItems = append(content.HTMLItems, generichtml.NewElement("p", "service-port",
			generichtml.Text("Container port: "),
			generichtml.NewTextElement("code", "", strconv.Itoa(svc.Port)),
		))
	}
	for _, s := range svc.Sections {
		content.HTMLItems = append(content.HTMLItems, sectionHTML(s))
	}
	return generichtml.Modal{Title: svc.Title, Body: []generichtml.HTMLItem{content}}.ToHTML()
}
