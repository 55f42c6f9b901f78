package help

import (
	"fmt"
	"strings"
)

// Markdown renders p as a markdown document: a heading, the title, a fenced usage
// block and one table per non-empty section.
func Markdown(p Page) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Program)

	if title := strings.TrimSpace(p.Title); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	b.WriteString("## Usage\n\n```\n")
	b.WriteString(StripANSI(UsageWithStyles(p, PlainStyles())))
	b.WriteString("\n```\n")

	for _, section := range p.Sections {
		if len(section.Flags) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s\n\n", section.Title)
		b.WriteString("| Option | Short | Value | Default | Description |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")

		for _, flag := range section.Flags {
			fmt.Fprintf(&b, "| `--%s` | %s | %s | %s | %s |\n",
				flag.Long,
				codeCell("-"+flag.Short, flag.Short != ""),
				codeCell(flag.Placeholder, !flag.Switch),
				codeCell(flag.Default, flag.Default != ""),
				tableCell(flag.Help),
			)
		}
	}

	return b.String()
}

func codeCell(text string, present bool) string {
	if !present {
		return ""
	}

	return "`" + text + "`"
}

// tableCell keeps multi-line help inside one markdown table cell.
func tableCell(text string) string {
	var lines []string

	for _, line := range splitLines(text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, strings.ReplaceAll(line, "|", `\|`))
		}
	}

	return strings.Join(lines, "<br>")
}
