package docsite

import "embed"

// Static holds the stylesheet and page script served under /static/.
//
//go:embed static
var Static embed.FS
