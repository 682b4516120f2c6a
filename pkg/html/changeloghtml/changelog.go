package changeloghtml

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
	"github.com/composio/docsite/pkg/changelog"
	"github.com/composio/docsite/pkg/html/generichtml"
)

const Title = "Changelog - Composio Self-Hosted"

var typeIcons = map[string]string{
	"helm":     "fas fa-cube",
	"docker":   "fab fa-docker",
	"breaking": "fas fa-exclamation-triangle",
}

// TypeIcon returns the icon class for a changelog entry type.
func TypeIcon(entryType string) string {
	if icon, ok := typeIcons[entryType]; ok {
		return icon
	}
	return "fas fa-circle"
}

func list(class, heading string, items []string) generichtml.HTMLElement {
	ul := generichtml.NewElement("ul", "")
	for _, item := range items {
		ul.HTMLItems = append(ul.HTMLItems, generichtml.NewTextElement("li", "", item))
	}
	return generichtml.NewElement("div", class, generichtml.NewTextElement("h4", "", heading), ul)
}

func entryHTML(entry docsv1.ChangelogEntry) generichtml.HTMLElement {
	class := "changelog-entry " + entry.Type
	if entry.Breaking {
		class += " breaking"
	}

	header := generichtml.NewElement("div", "entry-header",
		generichtml.NewTextElement("div", "entry-date", docsv1.DisplayDate(entry.Date)),
		generichtml.NewElement("div", "entry-type",
			generichtml.Icon(TypeIcon(entry.Type)),
			generichtml.Text(" "+strings.ToUpper(entry.Type)),
		),
	)
	if entry.Breaking {
		header.HTMLItems = append(header.HTMLItems, generichtml.NewTextElement("div", "breaking-badge", "BREAKING"))
	}

	content := generichtml.NewElement("div", "entry-content",
		generichtml.NewTextElement("h3", "", entry.Title),
		generichtml.NewTextElement("p", "entry-description", entry.Description),
		list("entry-changes", "Changes:", entry.Changes),
	)
	if len(entry.BreakingChanges) > 0 {
		content.HTMLItems = append(content.HTMLItems, list("breaking-changes", "Breaking Changes:", entry.BreakingChanges))
	}
	if len(entry.DockerImages) > 0 {
		images := generichtml.NewElement("div", "docker-list")
		for _, img := range entry.DockerImages {
			images.HTMLItems = append(images.HTMLItems, generichtml.NewElement("div", "docker-image",
				generichtml.NewTextElement("span", "service", img.Service),
				generichtml.NewTextElement("span", "repository", img.Repository),
				generichtml.NewTextElement("span", "tag", img.Tag),
			))
		}
		content.HTMLItems = append(content.HTMLItems, generichtml.NewElement("div", "docker-images",
			generichtml.NewTextElement("h4", "", "Docker Images:"),
			images,
		))
	}

	return generichtml.NewElement("div", class, header, content)
}

// EntriesHTML renders the entries in the order given.
func EntriesHTML(entries []docsv1.ChangelogEntry) string {
	sb := &strings.Builder{}
	for _, entry := range entries {
		sb.WriteString(entryHTML(entry).ToHTML())
		sb.WriteString("\n")
	}
	return sb.String()
}

// TimelineHTML renders the whole timeline container for filter. A nil
// document renders an empty timeline.
func TimelineHTML(doc *docsv1.ChangelogDocument, filter changelog.Filter) string {
	return generichtml.HTMLElement{
		Element: "div",
		Params:  map[string]string{"class": "changelog-timeline", "data-filter": string(filter)},
		Text:    EntriesHTML(changelog.Apply(doc, filter)),
	}.ToHTML()
}

func filterButtons(doc *docsv1.ChangelogDocument, active changelog.Filter) string {
	counts := changelog.Counts(doc)
	buttons := generichtml.NewElement("div", "changelog-filters")
	for _, f := range changelog.Filters {
		class := "filter-btn"
		if f == active {
			class += " active"
		}
		buttons.HTMLItems = append(buttons.HTMLItems, generichtml.HTMLElement{
			Element: "button",
			Params:  map[string]string{"class": class, "type": "button", "data-filter": string(f)},
			HTMLItems: []generichtml.HTMLItem{
				generichtml.Text(f.Label() + " "),
				generichtml.NewTextElement("span", "filter-count", strconv.Itoa(counts[f])),
			},
		})
	}
	return buttons.ToHTML()
}

// PrintChangelogHTMLReport writes the changelog page.
func PrintChangelogHTMLReport(w http.ResponseWriter, req *http.Request, doc *docsv1.ChangelogDocument, filter changelog.Filter, loadedAt time.Time, notifications ...generichtml.Notification) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	generichtml.WritePageStart(w, req.URL.Path, "changelog", Title)
	for _, n := range notifications {
		fmt.Fprintln(w, n.ToHTML())
	}

	fmt.Fprintf(w, `
<section class="page-header %s">
  <h1><i class="fas fa-history"></i> Changelog</h1>
  <p>Helm chart and Docker image releases for self-hosted deployments, newest first.</p>
</section>
`, generichtml.RevealClass)
	fmt.Fprintln(w, filterButtons(doc, filter))
	fmt.Fprintln(w, TimelineHTML(doc, filter))

	generichtml.WritePageEnd(w, loadedAt)
}
