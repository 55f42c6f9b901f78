// Package help rendering functions.
// This file lays a Page out the way argparse's raw-text formatter does.

package help

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Epilog returns the boxed "More information at <url>" banner, or "" without a url.
func Epilog(url string) string {
	return EpilogWithStyles(url, DefaultStyles())
}

// EpilogWithStyles is Epilog with explicit styles.
func EpilogWithStyles(url string, s Styles) string {
	if url == "" {
		return ""
	}

	return s.Banner.Render(moreInfoPrefix + url)
}

// Render lays out p with the default styles.
func Render(p Page) string {
	return RenderWithStyles(p, DefaultStyles())
}

// RenderWithStyles lays out p: usage, title, one block per non-empty section, then the epilog.
func RenderWithStyles(p Page, s Styles) string {
	var b strings.Builder

	b.WriteString(UsageWithStyles(p, s))
	b.WriteString("\n\n")

	if title := strings.TrimSpace(p.Title); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	column := helpColumn(p, s)

	for _, section := range p.Sections {
		if len(section.Flags) == 0 {
			continue
		}

		b.WriteString(s.Header.Render(section.Title + ":"))
		b.WriteString("\n")

		for _, flag := range section.Flags {
			writeFlag(&b, flag, s, column)
		}

		b.WriteString("\n")
	}

	if p.Epilog != "" {
		b.WriteString(p.Epilog)
		b.WriteString("\n")
	}

	// Tabs would be aligned by whatever tabwriter prints the page.
	out := strings.ReplaceAll(b.String(), "\t", "    ")
	out = longBreak.ReplaceAllString(out, "\n\n")

	return strings.Trim(out, "\n") + "\n"
}

// Usage returns the usage summary with the default styles.
func Usage(p Page) string {
	return UsageWithStyles(p, DefaultStyles())
}

// UsageWithStyles returns "usage: prog --req REQ [--opt OPT] ...", wrapped at usageWidth.
func UsageWithStyles(p Page, s Styles) string {
	prefix := s.Header.Render(usagePrefix) + " " + p.Program
	indent := strings.Repeat(" ", lipgloss.Width(usagePrefix+" "+p.Program)+1)

	var (
		lines   []string
		current = prefix
	)

	for _, section := range p.Sections {
		for _, flag := range section.Flags {
			part := s.Flag.Render("--" + flag.Long)
			if !flag.Switch {
				part += " " + s.Placeholder.Render(flag.Placeholder)
			}

			if !flag.Required {
				part = "[" + part + "]"
			}

			if lipgloss.Width(current)+1+lipgloss.Width(part) > usageWidth && current != prefix {
				lines = append(lines, current)
				current = indent + part

				continue
			}

			current += " " + part
		}
	}

	lines = append(lines, current)

	return strings.Join(lines, "\n")
}

// unexported constants.
const (
	flagIndent      = 2
	flagGap         = 2
	maxHelpPosition = 24
	moreInfoPrefix  = "More information at "
	usagePrefix     = "usage:"
	usageWidth      = 78
)

// unexported variables.
var (
	//nolint:gochecknoglobals // compiled once
	longBreak = regexp.MustCompile(`\n\n\n+`)
)

// helpColumn is where help text starts: just past the longest invocation, capped at maxHelpPosition.
func helpColumn(p Page, s Styles) int {
	longest := 0

	for _, section := range p.Sections {
		for _, flag := range section.Flags {
			longest = max(longest, lipgloss.Width(invocation(flag, s)))
		}
	}

	return min(longest+flagIndent+flagGap, maxHelpPosition)
}

// invocation is "--name NAME, -n NAME", or "--help, -h" for a switch.
func invocation(f Flag, s Styles) string {
	value := ""
	if !f.Switch {
		value = " " + s.Placeholder.Render(f.Placeholder)
	}

	out := s.Flag.Render("--"+f.Long) + value
	if f.Short != "" {
		out += ", " + s.Flag.Render("-"+f.Short) + value
	}

	return out
}

// splitLines splits on newlines; a trailing newline does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func writeFlag(b *strings.Builder, f Flag, s Styles, column int) {
	inv := invocation(f, s)
	lines := splitLines(strings.ReplaceAll(f.Help, "\t", "    "))
	pad := strings.Repeat(" ", column)

	b.WriteString(strings.Repeat(" ", flagIndent))
	b.WriteString(inv)

	if len(lines) == 0 {
		b.WriteString("\n")
		return
	}

	width := flagIndent + lipgloss.Width(inv)

	switch first := lines[0]; {
	case first == "":
		b.WriteString("\n")
	case width+flagGap <= column:
		b.WriteString(strings.Repeat(" ", column-width))
		b.WriteString(first + "\n")
	default:
		b.WriteString("\n" + pad + first + "\n")
	}

	for _, line := range lines[1:] {
		if line != "" {
			b.WriteString(pad)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
}
