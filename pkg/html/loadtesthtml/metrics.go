package loadtesthtml

import (
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/loadtests"
)

const placeholder = "--"

type metricCard struct {
	id    string
	label string
	icon  string
	value func(loadtests.Metrics) string
}

var metricCards = []metricCard{
	{id: "avgResponseTime", label: "Avg Response Time", icon: "fas fa-stopwatch", value: loadtests.Metrics.AvgResponseTimeDisplay},
	{id: "concurrentUsers", label: "Peak Concurrent Users", icon: "fas fa-users", value: loadtests.Metrics.ConcurrentUsersDisplay},
	{id: "throughput", label: "Avg Throughput", icon: "fas fa-tachometer-alt", value: loadtests.Metrics.ThroughputDisplay},
	{id: "errorRate", label: "Avg Error Rate", icon: "fas fa-exclamation-circle", value: loadtests.Metrics.ErrorRateDisplay},
}

// MetricsHTML renders the four summary cards. When ok is false the cards
// show placeholders.
func MetricsHTML(m loadtests.Metrics, ok bool) string {
	grid := generichtml.HTMLElement{
		Element: "div",
		Params:  map[string]string{"class": "metrics-grid", "id": "metricsGrid"},
	}
	for _, card := range metricCards {
		value := placeholder
		if ok {
			value = card.value(m)
		}
		grid.HTMLItems = append(grid.HTMLItems, generichtml.NewElement("div", "metric-card "+generichtml.RevealClass,
			generichtml.Icon(card.icon+" metric-icon"),
			generichtml.HTMLElement{
				Element:   "div",
				Params:    map[string]string{"class": "metric-value", "id": card.id},
				HTMLItems: []generichtml.HTMLItem{generichtml.Text(value)},
			},
			generichtml.NewTextElement("div", "metric-label", card.label),
		))
	}
	return grid.ToHTML()
}
