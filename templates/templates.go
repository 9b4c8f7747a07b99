// Package templates embeds the HTML views so the binary renders them
// from any working directory, like the embedded product catalog.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
