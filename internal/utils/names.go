package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameKey produces the caseless lookup key stored alongside a company name.
// Unicode case folding, not ToLower, so "Straße" and "STRASSE" collide the
// way a case-insensitive match would expect.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
