package loadtests

import (
	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
)

// ChartConfig is the subset of the Chart.js configuration object the
// dashboard uses. It is serialised as-is into the page.
type ChartConfig struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

type ChartOptions struct {
	Responsive bool        `json:"responsive"`
	Scales     ChartScales `json:"scales"`
}

type ChartScales struct {
	Y ChartAxis `json:"y"`
}

type ChartAxis struct {
	BeginAtZero bool `json:"beginAtZero"`
}

const (
	ResponseTimeChartID = "responseTimeChart"
	ThroughputChartID   = "throughputChart"

	primaryColor   = "#667eea"
	secondaryColor = "#764ba2"
)

// Charts holds both dashboard charts keyed by their canvas id.
type Charts map[string]ChartConfig

// BuildCharts builds the response time and throughput charts from every
// result in document order. The type filter does not apply to charts.
func BuildCharts(doc *docsv1.LoadTestDocument) Charts {
	var labels []string
	var responseTimes, throughput []float64
	if doc != nil {
		for _, r := range doc.LoadTests {
			labels = append(labels, docsv1.DisplayDate(r.Date))
			responseTimes = append(responseTimes, float64(r.AvgResponseTime))
			throughput = append(throughput, r.Throughput)
		}
	}

	options := ChartOptions{Responsive: true, Scales: ChartScales{Y: ChartAxis{BeginAtZero: true}}}
	return Charts{
		ResponseTimeChartID: {
			Type: "line",
			Data: ChartData{
				Labels: labels,
				Datasets: []ChartDataset{{
					Label:           "Response Time (ms)",
					Data:            responseTimes,
					BorderColor:     primaryColor,
					BackgroundColor: "rgba(102, 126, 234, 0.1)",
					Tension:         0.4,
				}},
			},
			Options: options,
		},
		ThroughputChartID: {
			Type: "bar",
			Data: ChartData{
				Labels: labels,
				Datasets: []ChartDataset{{
					Label:           "Throughput (req/s)",
					Data:            throughput,
					BorderColor:     primaryColor,
					BackgroundColor: secondaryColor,
					BorderWidth:     1,
				}},
			},
			Options: options,
		},
	}
}
