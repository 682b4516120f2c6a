package loadtesthtml

import (
	"sort"
	"strconv"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/loadtests"
)

func tabButton(tab loadtests.Tab) generichtml.HTMLElement {
	class := "tab-btn"
	if tab.Active {
		class += " active"
	}
	return generichtml.HTMLElement{
		Element:   "button",
		Params:    map[string]string{"class": class, "type": "button", "data-tab": tab.ID},
		HTMLItems: []generichtml.HTMLItem{generichtml.Text(tab.Label)},
	}
}

func tabPanel(tab loadtests.Tab, content generichtml.HTMLItem) generichtml.HTMLElement {
	class := "tab-panel"
	if tab.Active {
		class += " active"
	}
	return generichtml.HTMLElement{
		Element:   "div",
		Params:    map[string]string{"class": class, "id": tab.ID},
		HTMLItems: []generichtml.HTMLItem{content},
	}
}

func summaryPanel(results []docsv1.LoadTestResult) generichtml.HTMLItem {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	list := generichtml.NewElement("ul", "status-summary")
	for _, status := range statuses {
		list.HTMLItems = append(list.HTMLItems, generichtml.NewElement("li", "",
			generichtml.StatusBadge(status),
			generichtml.Text(" "+strconv.Itoa(counts[status])+" runs"),
		))
	}
	return generichtml.NewElement("div", "analysis-summary",
		generichtml.NewTextElement("p", "", strconv.Itoa(len(results))+" runs match the current selection."),
		list,
	)
}

func latencyPanel(results []docsv1.LoadTestResult) generichtml.HTMLItem {
	table := generichtml.NewHTMLTable(map[string]string{"class": "analysis-table"})
	header := generichtml.NewHTMLTableRow(nil)
	for _, column := range []string{"Test ID", "Avg", "P95", "P99", "Max"} {
		header.AddItems([]generichtml.HTMLItem{generichtml.HTMLTableHeaderRowItem{Text: column}})
	}
	table.AddHeaderRow(header)
	for _, r := range results {
		table.AddRow(generichtml.NewHTMLTableRowWithItems(nil, []generichtml.HTMLItem{
			cell(generichtml.Text(r.ID)),
			cell(generichtml.Text(ms(r.AvgResponseTime))),
			cell(generichtml.Text(ms(r.P95ResponseTime))),
			cell(generichtml.Text(ms(r.P99ResponseTime))),
			cell(generichtml.Text(ms(r.MaxResponseTime))),
		}))
	}
	return table
}

func errorsPanel(results []docsv1.LoadTestResult) generichtml.HTMLItem {
	list := generichtml.NewElement("ul", "error-breakdown")
	for _, r := range results {
		list.HTMLItems = append(list.HTMLItems, generichtml.NewElement("li", "error-rate "+string(loadtests.ErrorSeverity(r.ErrorRate)),
			generichtml.NewTextElement("span", "test-id", r.ID),
			generichtml.Raw(" "),
			generichtml.NewTextElement("span", "error-value", loadtests.FormatErrorRate(r.ErrorRate)),
		))
	}
	return list
}

// TabsHTML renders the analysis tabs with activeTab selected.
func TabsHTML(results []docsv1.LoadTestResult, activeTab string) string {
	tabs := loadtests.ActivateTab(activeTab)
	content := map[string]generichtml.HTMLItem{
		loadtests.TabSummary: summaryPanel(results),
		loadtests.TabLatency: latencyPanel(results),
		loadtests.TabErrors:  errorsPanel(results),
	}

	buttons := generichtml.NewElement("div", "tab-buttons")
	panels := generichtml.NewElement("div", "tab-panels")
	for _, tab := range tabs {
		buttons.HTMLItems = append(buttons.HTMLItems, tabButton(tab))
		panels.HTMLItems = append(panels.HTMLItems, tabPanel(tab, content[tab.ID]))
	}
	return generichtml.NewElement("div", "analysis-tabs", buttons, panels).ToHTML()
}
