package help_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/argsynth/internal/help"
)

func TestStripANSIWithEmptyString(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := help.StripANSI("")
	g.Expect(result).To(Equal(""))
}

func TestStripANSIWithEscapeCodes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// ANSI escape for bold: \x1b[1m ... \x1b[0m
	input := "\x1b[1mhello\x1b[0m world"
	result := help.StripANSI(input)
	g.Expect(result).To(Equal("hello world"))
}

func TestStripANSIWithMultipleEscapeCodes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	input := "\x1b[1m\x1b[36mhello\x1b[0m \x1b[33mworld\x1b[0m"
	result := help.StripANSI(input)
	g.Expect(result).To(Equal("hello world"))
}

func TestStripANSIWithPlainText(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := help.StripANSI("hello world")
	g.Expect(result).To(Equal("hello world"))
}

func TestProperty_StripANSIMatchesLipglossWidth(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		g := NewWithT(t)

		text := rapid.StringMatching(`[a-zA-Z0-9 {},.-]{0,30}`).Draw(t, "text")
		color := rapid.SampledFrom([]string{"\x1b[1m", "\x1b[36m", "\x1b[33m", ""}).Draw(t, "color")
		styled := color + text + "\x1b[0m"

		g.Expect(help.StripANSI(styled)).To(Equal(text))
		g.Expect(lipgloss.Width(styled)).To(Equal(len(text)))
	})
}
