package core

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Argument is the command line view of one parameter.
type Argument struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Help is the text shown in the help page: the description followed by a blank line.
	Help       string `yaml:"help"`
	HasDefault bool   `yaml:"has_default"`
	Default    any    `yaml:"-"`
	// DefaultText is the default as it would be typed on the command line.
	DefaultText string `yaml:"default,omitempty"`
	// ShortLetter is the single-letter alias, or 0 when none was assigned.
	ShortLetter rune     `yaml:"-"`
	Choices     []string `yaml:"choices,omitempty"`
	Metavar     string   `yaml:"metavar,omitempty"`
	Required    bool     `yaml:"required"`
	Position    int      `yaml:"position"`
}

// Short returns the short flag letter as a string, or "" when none was assigned.
func (a Argument) Short() string {
	if a.ShortLetter == 0 {
		return ""
	}

	return string(a.ShortLetter)
}

func (a Argument) String() string {
	if a.HasDefault {
		return fmt.Sprintf("Argument `%s` with default '%s'.", a.Name, a.DefaultText)
	}

	return fmt.Sprintf("Argument `%s` without a default.", a.Name)
}

// unexported constants.
const (
	helpSpacing    = "\n\n"
	metavarArticle = "the"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // compiled once
	choicesPattern = regexp.MustCompile("either ['\"`](.+?)['\"`] or ['\"`](.+?)['\"`]")
	//nolint:gochecknoglobals // abbreviations applied to inferred metavars
	metavarAbbreviations = map[string]string{
		"NUMBER":    "NUM",
		"DIRECTORY": "DIR",
	}
)

// flattenDescription collapses whitespace runs to single spaces and lowercases.
func flattenDescription(desc string) string {
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(desc), " "))
}

// inferChoices finds "either 'a' or 'b'" in the description. Only the first match counts.
func inferChoices(desc string) []string {
	match := choicesPattern.FindStringSubmatch(flattenDescription(desc))
	if match == nil {
		return nil
	}

	return []string{match[1], match[2]}
}

// inferMetavar turns "The directory to use" into "DIR".
func inferMetavar(desc string) string {
	words := strings.Fields(desc)
	if len(words) < 2 || cases.Lower(language.Und).String(words[0]) != metavarArticle {
		return ""
	}

	metavar := cases.Upper(language.Und).String(words[1])
	if abbreviated, ok := metavarAbbreviations[metavar]; ok {
		return abbreviated
	}

	return metavar
}

func newArgument(param Parameter, desc string) Argument {
	return Argument{
		Name:        param.Name,
		Description: desc,
		Help:        desc + helpSpacing,
		HasDefault:  param.HasDefault,
		Default:     param.Default,
		DefaultText: param.DefaultText,
		Choices:     inferChoices(desc),
		Metavar:     inferMetavar(desc),
		Required:    !param.HasDefault,
		Position:    param.Position,
	}
}
