package pages

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Page
	}{
		{"/", Home},
		{"/index.html", Home},
		{"/changelog", Changelog},
		{"/changelog.html", Changelog},
		{"/docs/changelog/", Changelog},
		{"/load-tests.html", LoadTests},
		{"/access-request", AccessRequest},
		{"/troubleshooting.html", Home},
		{"/unknown/page", Home},
		// first match wins
		{"/load-tests/changelog", Changelog},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			if got := Classify(tc.path); got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}
