// Package help content structures.
// This file defines the data types a help page is built from.

package help

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Flag is one option line of a help page.
type Flag struct {
	Long  string
	Short string
	// Placeholder names the value in usage and option lines. Empty for switches.
	Placeholder string
	// Help is printed verbatim, one output line per line of text.
	Help     string
	Default  string
	Required bool
	Switch   bool
}

// Section is a titled group of flags.
type Section struct {
	Title string
	Flags []Flag
}

// Page is everything a help page shows.
type Page struct {
	Program  string
	Title    string
	Epilog   string
	Sections []Section
}

// Placeholder picks the value name for a flag: the metavar when there is one,
// then the choice set in braces, then the upper-cased flag name.
func Placeholder(name, metavar string, choices []string) string {
	switch {
	case metavar != "":
		return metavar
	case len(choices) > 0:
		return "{" + strings.Join(choices, ",") + "}"
	default:
		return cases.Upper(language.Und).String(name)
	}
}
