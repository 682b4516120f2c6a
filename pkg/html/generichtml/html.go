package generichtml

import (
	"fmt"
	"html"
	"io"
	"time"
)

const (
	// ScrollThreshold is how far the page scrolls before the navbar gets the
	// scrolled class.
	ScrollThreshold = 50
	// ScrollOffset keeps anchor targets clear of the fixed navbar.
	ScrollOffset = 80
	// RevealClass marks elements that animate in when scrolled into view.
	RevealClass = "animate-on-scroll"

	CopySuccessMessage = "Command copied to clipboard!"
	CopyFailureMessage = "Failed to copy command"
)

var (
	HTMLPageStart = `
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"><title>%s</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css">
<link rel="stylesheet" href="/static/site.css">
</head>

<body data-page="%s" data-scroll-threshold="%d" data-scroll-offset="%d" data-reveal-class="%s" data-notification-ms="%d" data-copy-success="%s" data-copy-failure="%s">
%s
<main class="container">
`

	HTMLPageEnd = `
</main>
<footer class="footer">
<p>Data current as of: %s</p>
<p><a href="/api/changelog">Changelog JSON</a> | <a href="/api/load-tests">Load test JSON</a></p>
</footer>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<script src="/static/site.js"></script>
</body>
</html>
`
)

// WritePageStart writes the document head and navigation for the page at path.
func WritePageStart(w io.Writer, path, page, title string) {
	fmt.Fprintf(w, HTMLPageStart,
		html.EscapeString(title),
		html.EscapeString(page),
		ScrollThreshold,
		ScrollOffset,
		RevealClass,
		NotificationDismissAfter.Milliseconds(),
		html.EscapeString(CopySuccessMessage),
		html.EscapeString(CopyFailureMessage),
		NewNavBar(path).ToHTML(),
	)
}

// WritePageEnd closes the document. A zero loadedAt means nothing has been
// loaded yet.
func WritePageEnd(w io.Writer, loadedAt time.Time) {
	current := "never"
	if !loadedAt.IsZero() {
		current = loadedAt.UTC().Format("Jan 2 15:04 2006 MST")
	}
	fmt.Fprintf(w, HTMLPageEnd, current)
}
