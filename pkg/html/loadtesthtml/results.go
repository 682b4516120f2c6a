package loadtesthtml

import (
	"strconv"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/loadtests"
)

const ResultsTableBodyID = "testResultsTableBody"

var resultColumns = []string{
	"Test ID", "Date & Time", "Duration", "Users", "Avg Response", "P95 Response", "Throughput", "Error Rate", "Status", "Actions",
}

func cell(items ...generichtml.HTMLItem) generichtml.HTMLItem {
	return generichtml.HTMLTableRowItem{HTMLItems: items}
}

func ms(v int) string {
	return strconv.Itoa(v) + "ms"
}

func resultRow(r docsv1.LoadTestResult) generichtml.HTMLTableRow {
	viewButton := generichtml.HTMLElement{
		Element: "button",
		Params: map[string]string{
			"class":        "view-btn",
			"type":         "button",
			"title":        "View Details",
			"data-test-id": r.ID,
		},
		HTMLItems: []generichtml.HTMLItem{generichtml.Icon("fas fa-eye")},
	}

	return generichtml.NewHTMLTableRowWithItems(map[string]string{"data-type": r.Type}, []generichtml.HTMLItem{
		cell(generichtml.NewElement("div", "test-id", generichtml.Icon("fas fa-hashtag"), generichtml.NewTextElement("span", "", r.ID))),
		cell(generichtml.NewElement("div", "test-datetime",
			generichtml.NewTextElement("div", "test-date", docsv1.DisplayDate(r.Date)),
			generichtml.NewTextElement("div", "test-time", r.Time),
		)),
		cell(generichtml.NewTextElement("span", "duration-badge", r.Duration)),
		cell(generichtml.NewElement("div", "users-info", generichtml.Icon("fas fa-users"), generichtml.NewTextElement("span", "", strconv.Itoa(r.ConcurrentUsers)))),
		cell(generichtml.NewElement("div", "response-time", generichtml.NewTextElement("span", "response-value", ms(r.AvgResponseTime)))),
		cell(generichtml.NewElement("div", "response-time", generichtml.NewTextElement("span", "response-value", ms(r.P95ResponseTime)))),
		cell(generichtml.NewElement("div", "throughput",
			generichtml.NewTextElement("span", "throughput-value", loadtests.FormatThroughput(r.Throughput)),
			generichtml.Raw(" "),
			generichtml.NewTextElement("span", "throughput-unit", "req/s"),
		)),
		cell(generichtml.NewElement("div", "error-rate "+string(loadtests.ErrorSeverity(r.ErrorRate)),
			generichtml.NewTextElement("span", "error-value", loadtests.FormatErrorRate(r.ErrorRate)),
		)),
		cell(generichtml.StatusBadge(r.Status)),
		cell(viewButton),
	})
}

func resultsTable(results []docsv1.LoadTestResult) generichtml.HTMLTable {
	table := generichtml.NewHTMLTable(map[string]string{"class": "results-table"})
	header := generichtml.NewHTMLTableRow(nil)
	for _, column := range resultColumns {
		header.AddItems([]generichtml.HTMLItem{generichtml.HTMLTableHeaderRowItem{Text: generichtml.Escape(column)}})
	}
	table.AddHeaderRow(header)
	table.SetBodyParams(map[string]string{"id": ResultsTableBodyID})
	for _, r := range results {
		table.AddRow(resultRow(r))
	}
	return table
}

// ResultsRowsHTML renders only the rows, for replacing the table body.
func ResultsRowsHTML(results []docsv1.LoadTestResult) string {
	return resultsTable(results).RowsHTML()
}

// ResultsTableHTML renders the results table with its header.
func ResultsTableHTML(results []docsv1.LoadTestResult) string {
	return resultsTable(results).ToHTML()
}

func detailRow(label string, value generichtml.HTMLItem) generichtml.HTMLElement {
	return generichtml.NewElement("div", "detail-row",
		generichtml.NewTextElement("span", "detail-label", label),
		value,
	)
}

func detailValue(text string) generichtml.HTMLItem {
	return generichtml.NewTextElement("span", "detail-value", text)
}

// DetailModal renders the details overlay for one run.
func DetailModal(r docsv1.LoadTestResult) string {
	status := generichtml.StatusBadge(r.Status)
	status.Params["class"] = "detail-value " + status.Params["class"]

	details := generichtml.NewElement("div", "test-details",
		detailRow("Date:", detailValue(docsv1.DisplayDate(r.Date)+" "+r.Time)),
		detailRow("Type:", detailValue(r.Type)),
		detailRow("Duration:", detailValue(r.Duration)),
		detailRow("Concurrent Users:", detailValue(strconv.Itoa(r.ConcurrentUsers))),
		detailRow("Average Response Time:", detailValue(ms(r.AvgResponseTime))),
		detailRow("P95 Response Time:", detailValue(ms(r.P95ResponseTime))),
		detailRow("P99 Response Time:", detailValue(ms(r.P99ResponseTime))),
		detailRow("Max Response Time:", detailValue(ms(r.MaxResponseTime))),
		detailRow("Throughput:", detailValue(loadtests.FormatThroughput(r.Throughput)+" req/s")),
		detailRow("Error Rate:", detailValue(loadtests.FormatErrorRate(r.ErrorRate))),
		detailRow("Status:", status),
	)
	description := generichtml.NewElement("div", "test-description",
		generichtml.NewTextElement("h4", "", "Description:"),
		generichtml.NewTextElement("p", "", r.Description),
	)

	return generichtml.Modal{
		Title: "Test Details: " + r.ID,
		Body:  []generichtml.HTMLItem{details, description},
	}.ToHTML()
}
