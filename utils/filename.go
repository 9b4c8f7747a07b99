package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// CatalogFileName builds the download name for an exported catalog,
// e.g. "Catalogo_Mauri_Bebidas_14.pdf". Whitespace is replaced with
// underscores so the name survives every browser.
func CatalogFileName(category string, now time.Time) string {
	name := fmt.Sprintf("Catalogo_Mauri_%s_%d.pdf", category, now.Day())
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}
