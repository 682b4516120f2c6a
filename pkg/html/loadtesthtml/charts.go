package loadtesthtml

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/loadtests"
)

var chartTitles = []struct {
	id    string
	title string
}{
	{id: loadtests.ResponseTimeChartID, title: "Response Time Trend"},
	{id: loadtests.ThroughputChartID, title: "Throughput Trend"},
}

// ChartsHTML renders a canvas per chart followed by its configuration as a
// JSON script block, which the page script hands to Chart.js.
func ChartsHTML(charts loadtests.Charts) (string, error) {
	sb := &strings.Builder{}
	sb.WriteString(`<div class="charts-grid">`)
	for _, c := range chartTitles {
		config, ok := charts[c.id]
		if !ok {
			continue
		}
		// json.Marshal escapes <, > and & so the block cannot end the script early.
		raw, err := json.Marshal(config)
		if err != nil {
			return "", errors.Wrapf(err, "encoding chart %s", c.id)
		}
		sb.WriteString(generichtml.NewElement("div", "chart-card "+generichtml.RevealClass,
			generichtml.NewTextElement("h3", "", c.title),
			generichtml.HTMLElement{Element: "canvas", Params: map[string]string{"id": c.id}},
			generichtml.HTMLElement{
				Element: "script",
				Params:  map[string]string{"type": "application/json", "data-chart-for": c.id},
				Text:    string(raw),
			},
		).ToHTML())
	}
	sb.WriteString(`</div>`)
	return sb.String(), nil
}
