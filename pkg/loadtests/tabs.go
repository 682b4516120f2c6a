package loadtests

type Tab struct {
	ID     string
	Label  string
	Active bool
}

const (
	TabSummary = "summary"
	TabLatency = "latency"
	TabErrors  = "errors"
)

var tabLabels = []Tab{
	{ID: TabSummary, Label: "Summary"},
	{ID: TabLatency, Label: "Latency"},
	{ID: TabErrors, Label: "Errors"},
}

// ActivateTab returns the analysis tabs with exactly the one matching target
// marked active. An unknown target leaves every tab inactive.
func ActivateTab(target string) []Tab {
	tabs := make([]Tab, len(tabLabels))
	for i, t := range tabLabels {
		t.Active = t.ID == target
		tabs[i] = t
	}
	return tabs
}
