// Package docstring extracts per-parameter descriptions from structured doc comments.
//
// Three layouts are recognized: Google style ("Args:" followed by indented
// "name: text" entries), numpydoc ("Parameters" underlined with dashes) and
// reST field lists (":param name: text"). Text in none of these layouts yields
// a summary and no parameters.
package docstring

import (
	"regexp"
	"strings"
)

// Param is one documented parameter.
type Param struct {
	Name        string
	Description string
}

// Docstring is the parsed form of a documentation block.
type Docstring struct {
	Summary string
	Params  []Param
}

// Lookup returns the description documented for name.
func (d Docstring) Lookup(name string) (string, bool) {
	for _, param := range d.Params {
		if param.Name == name {
			return param.Description, true
		}
	}

	return "", false
}

// Parse parses text. It never fails: unrecognized text produces an empty parameter list.
func Parse(text string) Docstring {
	lines := cleanLines(text)

	doc := Docstring{Summary: summary(lines)}

	switch {
	case hasRestFields(lines):
		doc.Params = parseRest(lines)
	case numpySectionStart(lines) >= 0:
		doc.Params = parseNumpy(lines, numpySectionStart(lines))
	case googleSectionStart(lines) >= 0:
		doc.Params = parseGoogle(lines, googleSectionStart(lines))
	}

	return doc
}

// unexported constants.
const (
	tabWidth = 4
)

// unexported variables.
var (
	//nolint:gochecknoglobals // compiled once
	dashesPattern = regexp.MustCompile(`^-{3,}$`)
	//nolint:gochecknoglobals // compiled once
	googleHeaderPattern = regexp.MustCompile(
		`^(?i:args|arguments|parameters|params|keyword args|keyword arguments):$`)
	//nolint:gochecknoglobals // compiled once
	googleItemPattern = regexp.MustCompile(
		`^(?:[-*]\s+)?\*{0,2}([A-Za-z_][A-Za-z0-9_]*)\s*(?:\([^)]*\))?\s*:(?:\s+(.*))?$`)
	//nolint:gochecknoglobals // compiled once
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	//nolint:gochecknoglobals // compiled once
	numpyHeaderPattern = regexp.MustCompile(`^(?i:parameters|params|arguments|args|other parameters)$`)
	//nolint:gochecknoglobals // compiled once
	restFieldPattern = regexp.MustCompile(
		`^:(?:param|parameter|arg|argument|key|keyword)\s+(?:[^:]*\s)?\*{0,2}([A-Za-z_][A-Za-z0-9_]*)\s*:(?:\s*(.*))?$`)
	//nolint:gochecknoglobals // compiled once
	sectionHeaderPattern = regexp.MustCompile(`^[A-Z][A-Za-z ]*:$`)
)

// line is one line of a doc block with its indentation measured.
type line struct {
	indent int
	text   string
}

func (l line) blank() bool {
	return l.text == ""
}

// cleanLines splits text into lines, expands tabs and removes the common indentation.
func cleanLines(text string) []line {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]line, 0, len(raw))
	common := -1

	for _, r := range raw {
		expanded := strings.ReplaceAll(r, "\t", strings.Repeat(" ", tabWidth))
		trimmed := strings.TrimLeft(expanded, " ")
		l := line{indent: len(expanded) - len(trimmed), text: strings.TrimRight(trimmed, " ")}

		if !l.blank() && (common < 0 || l.indent < common) {
			common = l.indent
		}

		lines = append(lines, l)
	}

	for i := range lines {
		if !lines[i].blank() {
			lines[i].indent -= common
		}
	}

	return lines
}

// describe joins an entry's first line with its continuation lines.
func describe(first string, continuation []line) string {
	parts := make([]string, 0, len(continuation)+1)
	parts = append(parts, first)

	base := -1

	for _, l := range continuation {
		if !l.blank() && (base < 0 || l.indent < base) {
			base = l.indent
		}
	}

	for _, l := range continuation {
		if l.blank() {
			parts = append(parts, "")
			continue
		}

		parts = append(parts, strings.Repeat(" ", l.indent-base)+l.text)
	}

	return strings.Trim(strings.Join(parts, "\n"), "\n ")
}

func googleSectionStart(lines []line) int {
	for i, l := range lines {
		if googleHeaderPattern.MatchString(l.text) {
			return i
		}
	}

	return -1
}

func hasRestFields(lines []line) bool {
	for _, l := range lines {
		if restFieldPattern.MatchString(l.text) {
			return true
		}
	}

	return false
}

func numpySectionStart(lines []line) int {
	for i := 0; i+1 < len(lines); i++ {
		if numpyHeaderPattern.MatchString(lines[i].text) && dashesPattern.MatchString(lines[i+1].text) {
			return i
		}
	}

	return -1
}

// parseGoogle reads entries after the header at lines[start].
func parseGoogle(lines []line, start int) []Param {
	header := lines[start].indent
	itemIndent := -1

	var (
		params       []Param
		current      *Param
		first        string
		continuation []line
	)

	flush := func() {
		if current != nil {
			current.Description = describe(first, continuation)
			params = append(params, *current)
		}

		current, continuation = nil, nil
	}

	for _, l := range lines[start+1:] {
		if l.blank() {
			if current != nil {
				continuation = append(continuation, l)
			}

			continue
		}

		if itemIndent < 0 {
			if l.indent < header {
				break
			}

			itemIndent = l.indent
		}

		match := googleItemPattern.FindStringSubmatch(l.text)

		switch {
		case l.indent < itemIndent:
			flush()
			return params
		case l.indent == itemIndent && match != nil && !sectionHeaderPattern.MatchString(l.text):
			flush()

			current = &Param{Name: match[1]}
			first = match[2]
		case l.indent == itemIndent && (itemIndent == header || sectionHeaderPattern.MatchString(l.text)):
			flush()
			return params
		case current != nil:
			continuation = append(continuation, l)
		}
	}

	flush()

	return params
}

// parseNumpy reads "name : type" entries after the underlined header at lines[start].
func parseNumpy(lines []line, start int) []Param {
	var (
		params       []Param
		names        []string
		continuation []line
	)

	base := lines[start].indent

	flush := func() {
		desc := describe("", continuation)
		for _, name := range names {
			params = append(params, Param{Name: name, Description: desc})
		}

		names, continuation = nil, nil
	}

	body := lines[start+2:]

	for i, l := range body {
		if l.blank() {
			continuation = append(continuation, l)
			continue
		}

		if l.indent < base || (i+1 < len(body) && dashesPattern.MatchString(body[i+1].text)) {
			break
		}

		if l.indent > base {
			continuation = append(continuation, l)
			continue
		}

		flush()

		spec, _, _ := strings.Cut(l.text, ":")
		for name := range strings.SplitSeq(spec, ",") {
			name = strings.TrimLeft(strings.TrimSpace(name), "*")
			if identifierPattern.MatchString(name) {
				names = append(names, name)
			}
		}
	}

	flush()

	return params
}

// parseRest reads ":param name: text" fields.
func parseRest(lines []line) []Param {
	var params []Param

	for i := 0; i < len(lines); i++ {
		match := restFieldPattern.FindStringSubmatch(lines[i].text)
		if match == nil {
			continue
		}

		var continuation []line

		j := i + 1
		for ; j < len(lines) && !lines[j].blank() && lines[j].indent > lines[i].indent; j++ {
			continuation = append(continuation, lines[j])
		}

		params = append(params, Param{Name: match[1], Description: describe(match[2], continuation)})
		i = j - 1
	}

	return params
}

// summary is the first paragraph, joined onto one line.
func summary(lines []line) string {
	var words []string

	for _, l := range lines {
		if l.blank() {
			if len(words) > 0 {
				break
			}

			continue
		}

		words = append(words, l.text)
	}

	return strings.Join(words, " ")
}
