package htmltesthelpers

import (
	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
)

func GetChangelogDocument() *docsv1.ChangelogDocument {
	return &docsv1.ChangelogDocument{
		Changelog: []docsv1.ChangelogEntry{
			{
				Date:        "2024-01-15",
				Type:        "helm",
				Title:       "Helm chart 0.4.0",
				Description: "Adds autoscaling for apollo.",
				Changes:     []string{"HPA for apollo", "Configurable resource requests"},
			},
			{
				Date:            "2024-03-02",
				Type:            "docker",
				Title:           "Images for release 2024.03",
				Description:     "New image tags for every service.",
				Changes:         []string{"Rebuilt on distroless base"},
				Breaking:        true,
				BreakingChanges: []string{"MCP now listens on port 3000"},
				DockerImages: []docsv1.DockerImage{
					{Service: "apollo", Repository: "composio/apollo", Tag: "4e5a118"},
					{Service: "mcp", Repository: "composio/mcp", Tag: "4e5a118"},
				},
			},
			{
				Date:        "2024-02-10",
				Type:        "helm",
				Title:       "Helm chart 0.5.0",
				Description: "Moves secrets into a dedicated <Secret> object.",
				Changes:     []string{"Secrets split out"},
				Breaking:    true,
			},
			{
				Date:        "2023-12-20",
				Type:        "docker",
				Title:       "Images for release 2023.12",
				Description: "Routine rebuild.",
				Changes:     []string{"Base image updates"},
			},
		},
	}
}

func GetLoadTestDocument() *docsv1.LoadTestDocument {
	return &docsv1.LoadTestDocument{
		LoadTests: []docsv1.LoadTestResult{
			{
				ID: "lt-001", Date: "2024-03-01", Time: "09:00", Duration: "10m", Type: "api",
				ConcurrentUsers: 50, AvgResponseTime: 100, P95ResponseTime: 180, P99ResponseTime: 250, MaxResponseTime: 400,
				Throughput: 1000, ErrorRate: 0.3, Status: "passed", Description: "Baseline API run.",
			},
			{
				ID: "lt-002", Date: "2024-03-02", Time: "14:30", Duration: "30m", Type: "stress",
				ConcurrentUsers: 200, AvgResponseTime: 200, P95ResponseTime: 450, P99ResponseTime: 700, MaxResponseTime: 1200,
				Throughput: 1234.5, ErrorRate: 1.5, Status: "failed", Description: "Stress run past the configured limits.",
			},
			{
				ID: "lt-003", Date: "2024-03-02", Time: "08:15", Duration: "10m", Type: "api",
				ConcurrentUsers: 75, AvgResponseTime: 300, P95ResponseTime: 520, P99ResponseTime: 800, MaxResponseTime: 950,
				Throughput: 1470, ErrorRate: 0.7, Status: "warning", Description: "API run after the chart upgrade.",
			},
		},
	}
}
