package loadtesthtml

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/loadtests"
)

const Title = "Load Tests - Composio Self-Hosted"

// TypeLabel is the button label for a test type.
func TypeLabel(testType string) string {
	if testType == loadtests.TypeAll {
		return "All Tests"
	}
	// Casers are stateful, so one is made per call.
	return cases.Title(language.English).String(testType)
}

// TypeButtonsHTML renders one button per test type found in doc, plus "all".
func TypeButtonsHTML(doc *docsv1.LoadTestDocument, active loadtests.TypeFilter) string {
	buttons := generichtml.NewElement("div", "test-type-selector")
	for _, t := range append([]string{loadtests.TypeAll}, loadtests.Types(doc)...) {
		class := "test-type-btn"
		if string(active) == t {
			class += " active"
		}
		buttons.HTMLItems = append(buttons.HTMLItems, generichtml.HTMLElement{
			Element:   "button",
			Params:    map[string]string{"class": class, "type": "button", "data-type": t},
			HTMLItems: []generichtml.HTMLItem{generichtml.Text(TypeLabel(t))},
		})
	}
	return buttons.ToHTML()
}

// DateRangeHTML renders the date inputs. The range is shown and submitted
// but does not narrow the results.
func DateRangeHTML(r loadtests.DateRange) string {
	input := func(id, label, value string) generichtml.HTMLElement {
		return generichtml.NewElement("label", "date-input",
			generichtml.Text(label+" "),
			generichtml.HTMLElement{
				Element: "input",
				Params:  map[string]string{"type": "date", "id": id, "name": id, "value": value},
			},
		)
	}
	apply := generichtml.HTMLElement{
		Element:   "button",
		Params:    map[string]string{"class": "btn btn-primary", "type": "button", "id": "applyDateFilter"},
		HTMLItems: []generichtml.HTMLItem{generichtml.Icon("fas fa-filter"), generichtml.Text(" Apply")},
	}
	return generichtml.NewElement("div", "date-range-selector",
		input("startDate", "From", r.StartString()),
		input("endDate", "To", r.EndString()),
		apply,
	).ToHTML()
}

// View is the state a load tests page is rendered for.
type View struct {
	Filter    loadtests.TypeFilter
	DateRange loadtests.DateRange
	Tab       string
}

// PrintLoadTestsHTMLReport writes the load tests dashboard. A nil document
// renders the page chrome with empty sections.
func PrintLoadTestsHTMLReport(w http.ResponseWriter, req *http.Request, doc *docsv1.LoadTestDocument, view View, loadedAt time.Time) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	generichtml.WritePageStart(w, req.URL.Path, "load-tests", Title)

	fmt.Fprintf(w, `
<section class="page-header %s">
  <h1><i class="fas fa-chart-line"></i> Load Test Results</h1>
  <p>Performance runs against the self-hosted stack.</p>
</section>
`, generichtml.RevealClass)

	results := loadtests.Apply(doc, view.Filter)
	metrics, ok := loadtests.ComputeMetrics(results)

	fmt.Fprintf(w, `<div class="load-test-controls">%s%s</div>`+"\n", DateRangeHTML(view.DateRange), TypeButtonsHTML(doc, view.Filter))
	fmt.Fprintln(w, MetricsHTML(metrics, ok))

	charts, err := ChartsHTML(loadtests.BuildCharts(doc))
	if err != nil {
		log.WithError(err).Error("unable to render charts")
	} else {
		fmt.Fprintln(w, charts)
	}

	fmt.Fprintf(w, `<section class="results-section">
<h2>Test Results</h2>
%s
</section>
`, ResultsTableHTML(results))
	fmt.Fprintf(w, `<section class="analysis-section">
<h2>Analysis</h2>
%s
</section>
`, TabsHTML(results, view.Tab))

	generichtml.WritePageEnd(w, loadedAt)
}
