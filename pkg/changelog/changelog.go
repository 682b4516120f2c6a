package changelog

import (
	"sort"

	docsv1 "github.com/composio/docsite/pkg/apis/docs/v1"
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterHelm     Filter = "helm"
	FilterDocker   Filter = "docker"
	FilterBreaking Filter = "breaking"
)

// Filters lists the filter buttons in display order.
var Filters = []Filter{FilterAll, FilterHelm, FilterDocker, FilterBreaking}

// ParseFilter returns FilterAll for anything it does not recognise.
func ParseFilter(s string) Filter {
	for _, f := range Filters {
		if string(f) == s {
			return f
		}
	}
	return FilterAll
}

func (f Filter) Label() string {
	switch f {
	case FilterHelm:
		return "Helm Charts"
	case FilterDocker:
		return "Docker Images"
	case FilterBreaking:
		return "Breaking Changes"
	default:
		return "All Changes"
	}
}

// Matches reports whether entry belongs to the subset selected by f.
func (f Filter) Matches(entry docsv1.ChangelogEntry) bool {
	switch f {
	case FilterHelm:
		return entry.Type == docsv1.ChangelogTypeHelm
	case FilterDocker:
		return entry.Type == docsv1.ChangelogTypeDocker
	case FilterBreaking:
		return entry.Breaking
	default:
		return true
	}
}

// Apply returns the entries selected by filter, most recent first. The
// document is not modified. A nil document yields no entries.
func Apply(doc *docsv1.ChangelogDocument, filter Filter) []docsv1.ChangelogEntry {
	if doc == nil {
		return nil
	}

	entries := make([]docsv1.ChangelogEntry, 0, len(doc.Changelog))
	for _, entry := range doc.Changelog {
		if filter.Matches(entry) {
			entries = append(entries, entry)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ParsedDate().After(entries[j].ParsedDate())
	})
	return entries
}

// Counts returns the number of entries each filter selects.
func Counts(doc *docsv1.ChangelogDocument) map[Filter]int {
	counts := map[Filter]int{}
	if doc == nil {
		return counts
	}
	for _, f := range Filters {
		for _, entry := range doc.Changelog {
			if f.Matches(entry) {
				counts[f]++
			}
		}
	}
	return counts
}
