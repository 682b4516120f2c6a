// Package pages classifies request paths into the site's page kinds.
package pages

import "strings"

type Page string

const (
	Changelog     Page = "changelog"
	LoadTests     Page = "load-tests"
	AccessRequest Page = "access-request"
	Home          Page = "home"
)

// Classify matches path against the page names in a fixed order. Any path
// that contains none of them is Home, including paths that belong to
// unrelated pages.
func Classify(path string) Page {
	for _, p := range []Page{Changelog, LoadTests, AccessRequest} {
		if strings.Contains(path, string(p)) {
			return p
		}
	}
	return Home
}
