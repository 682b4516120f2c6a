package homehtml

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/changelog"
	"github.com/composio/docsite/pkg/html/generichtml"
	"github.com/composio/docsite/pkg/loadtests"
	"github.com/composio/docsite/pkg/reference"
	"github.com/composio/docsite/pkg/sitedata"
)

const Title = "Composio Self-Hosted Documentation"

type quickstartStep struct {
	title   string
	command string
}

var quickstartSteps = []quickstartStep{
	{title: "Create the namespace", command: "kubectl create namespace composio --dry-run=client -o yaml | kubectl apply -f -"},
	{title: "Install the chart", command: "helm install composio ./composio -n composio"},
	{title: "Check the pods", command: "kubectl get pods -n composio"},
	{title: "Reach the API", command: "kubectl port-forward -n composio svc/composio-apollo 8080:9900"},
	{title: "Upgrade later", command: "helm upgrade composio ./composio -n composio --debug"},
}

var helpCategories = []struct {
	key  string
	icon string
}{
	{key: "common", icon: "fas fa-wrench"},
	{key: "gke", icon: "fab fa-google"},
	{key: "monitoring", icon: "fas fa-heartbeat"},
}

func quickstartHTML() string {
	steps := generichtml.NewElement("ol", "quickstart-steps")
	for _, step := range quickstartSteps {
		steps.HTMLItems = append(steps.HTMLItems, generichtml.NewElement("li", "quickstart-step "+generichtml.RevealClass,
			generichtml.NewTextElement("h3", "", step.title),
			generichtml.CodeBlock(step.command),
		))
	}
	return generichtml.HTMLElement{
		Element: "section",
		Params:  map[string]string{"id": "quickstart", "class": "quickstart"},
		HTMLItems: []generichtml.HTMLItem{
			generichtml.NewTextElement("h2", "", "Quick Start"),
			steps,
		},
	}.ToHTML()
}

// latestHTML summarises the newest changelog entry and load test run, when
// those documents are loaded.
func latestHTML(snapshot sitedata.Snapshot) string {
	cards := generichtml.NewElement("div", "latest-grid")

	if entries := changelog.Apply(snapshot.Changelog, changelog.FilterAll); len(entries) > 0 {
		latest := entries[0]
		cards.HTMLItems = append(cards.HTMLItems, generichtml.NewElement("div", "latest-card "+generichtml.RevealClass,
			generichtml.NewTextElement("h3", "", "Latest release"),
			generichtml.NewTextElement("p", "latest-title", latest.Title),
			generichtml.NewTextElement("p", "latest-date", docsv1.DisplayDate(latest.Date)),
			generichtml.NewHTMLLink("All releases", &url.URL{Path: "/changelog"}),
		))
	}

	if results := loadtests.Apply(snapshot.LoadTests, loadtests.TypeAll); len(results) > 0 {
		latest := results[0]
		more := &url.URL{Path: "/load-tests", RawQuery: url.Values{"type": {latest.Type}}.Encode()}
		cards.HTMLItems = append(cards.HTMLItems, generichtml.NewElement("div", "latest-card "+generichtml.RevealClass,
			generichtml.NewTextElement("h3", "", "Latest load test"),
			generichtml.NewTextElement("p", "latest-title", latest.ID+" ("+latest.Type+")"),
			generichtml.StatusBadge(latest.Status),
			generichtml.NewHTMLLinkWithParams("More "+latest.Type+" runs", more, map[string]string{"class": "latest-link"}),
		))
	}

	if len(cards.HTMLItems) == 0 {
		return ""
	}
	return cards.ToHTML()
}

func helpHTML(tables *reference.Tables) string {
	buttons := generichtml.NewElement("div", "help-grid")
	for _, category := range helpCategories {
		fix, ok := tables.QuickFix(category.key)
		if !ok {
			continue
		}
		buttons.HTMLItems = append(buttons.HTMLItems, generichtml.HTMLElement{
			Element:   "button",
			Params:    map[string]string{"class": "quick-fix-btn", "type": "button", "data-quick-fix": category.key},
			HTMLItems: []generichtml.HTMLItem{generichtml.Icon(category.icon), generichtml.Text(" " + fix.Title)},
		})
	}

	names := make([]string, 0, len(tables.Services))
	for name := range tables.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	services := generichtml.NewElement("div", "services-grid")
	for _, name := range names {
		svc := tables.Services[name]
		services.HTMLItems = append(services.HTMLItems, generichtml.HTMLElement{
			Element: "button",
			Params:  map[string]string{"class": "service-card " + generichtml.RevealClass, "type": "button", "data-service": name},
			HTMLItems: []generichtml.HTMLItem{
				generichtml.NewTextElement("h4", "", svc.Title),
				generichtml.NewTextElement("p", "", svc.Description),
			},
		})
	}

	return generichtml.NewElement("section", "help",
		generichtml.NewTextElement("h2", "", "Troubleshooting"),
		buttons,
		generichtml.NewTextElement("h2", "", "Services"),
		services,
	).ToHTML()
}

// PrintHomeHTMLReport writes the landing page.
func PrintHomeHTMLReport(w http.ResponseWriter, req *http.Request, snapshot sitedata.Snapshot, tables *reference.Tables) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	generichtml.WritePageStart(w, req.URL.Path, "home", Title)

	fmt.Fprintf(w, `
<section class="hero %s">
  <h1>Deploy Composio on your own Kubernetes cluster</h1>
  <p>Helm charts, Docker images and operational guides for self-hosted installations.</p>
  <a class="btn btn-primary" href="#quickstart">Get started</a>
  <a class="btn btn-secondary" href="/access-request">Request access</a>
</section>
`, generichtml.RevealClass)
	fmt.Fprintln(w, latestHTML(snapshot))
	fmt.Fprintln(w, quickstartHTML())
	fmt.Fprintln(w, helpHTML(tables))

	generichtml.WritePageEnd(w, snapshot.LoadedAt)
}
