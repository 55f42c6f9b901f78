package help_test

import (
	"os"
	"strings"
	"testing"

	"github.com/akedrou/textdiff"
	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/argsynth/internal/help"
)

func carPage() help.Page {
	return help.Page{
		Program: "car",
		Title:   "Car is a simple car.",
		Sections: []help.Section{
			{Title: "Required arguments", Flags: []help.Flag{
				{Long: "name", Short: "n", Placeholder: "NAME", Help: "The name of the car.\n\n", Required: true},
			}},
			{Title: "Optional arguments", Flags: []help.Flag{
				{Long: "color", Short: "c", Placeholder: "COLOR", Help: "The color of the car.\n\n", Default: "red"},
				{
					Long: "sided", Short: "s", Placeholder: "{left,right}",
					Help: "Either 'left' or 'right'.\n\n", Default: "right",
				},
				{Long: "help", Short: "h", Help: "Show this help message and exit.", Switch: true},
				{Long: "version", Short: "v", Help: "Show program's version number and exit.", Switch: true},
			}},
		},
	}
}

func TestRenderMatchesGolden(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	want, err := os.ReadFile("testdata/car_help.golden")
	g.Expect(err).NotTo(HaveOccurred())

	got := help.RenderWithStyles(carPage(), help.PlainStyles())

	g.Expect(got).To(Equal(string(want)), textdiff.Unified("golden", "rendered", string(want), got))
}

func TestRenderOmitsEmptySections(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	page := carPage()
	page.Sections[0].Flags = nil

	output := help.StripANSI(help.Render(page))

	g.Expect(output).NotTo(ContainSubstring("Required arguments:"))
	g.Expect(output).To(ContainSubstring("Optional arguments:"))
}

func TestRenderOmitsEmptyTitle(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	page := carPage()
	page.Title = "  \n"

	output := help.RenderWithStyles(page, help.PlainStyles())

	g.Expect(output).To(ContainSubstring("[--version]\n\nRequired arguments:"))
}

func TestRenderPutsEpilogLast(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	page := carPage()
	page.Epilog = help.Epilog("https://example.com/car")

	output := help.StripANSI(help.Render(page))

	g.Expect(output).To(HaveSuffix(page.Epilog + "\n"))
	g.Expect(output).To(ContainSubstring("More information at https://example.com/car"))
}

func TestRenderIndentsContinuationLines(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	page := help.Page{Program: "p", Sections: []help.Section{{Title: "Optional arguments", Flags: []help.Flag{
		{Long: "automatic", Short: "a", Placeholder: "{true,false}", Help: "Determines it.\ncan be either 'true' or 'false'.\n\n"},
	}}}}

	output := help.RenderWithStyles(page, help.PlainStyles())

	g.Expect(output).To(ContainSubstring("\n" + strings.Repeat(" ", 24) + "Determines it.\n" +
		strings.Repeat(" ", 24) + "can be either 'true' or 'false'.\n"))
}

func TestRenderShortInvocationsNarrowTheHelpColumn(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	page := help.Page{Program: "p", Sections: []help.Section{{Title: "Optional arguments", Flags: []help.Flag{
		{Long: "help", Short: "h", Help: "Show help.", Switch: true},
	}}}}

	output := help.RenderWithStyles(page, help.PlainStyles())

	g.Expect(output).To(ContainSubstring("\n  --help, -h  Show help.\n"))
}

func TestRenderFlagWithoutShortLetter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	page := help.Page{Program: "p", Sections: []help.Section{{Title: "Required arguments", Flags: []help.Flag{
		{Long: "zz", Placeholder: "ZZ", Help: "\n\n", Required: true},
	}}}}

	output := help.RenderWithStyles(page, help.PlainStyles())

	g.Expect(output).To(ContainSubstring("\n  --zz ZZ\n"))
	g.Expect(output).To(HavePrefix("usage: p --zz ZZ\n"))
}

func TestEpilogEmptyWithoutURL(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(help.Epilog("")).To(BeEmpty())
}

func TestEpilogIsBoxed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	lines := strings.Split(help.StripANSI(help.Epilog("https://x.io")), "\n")

	g.Expect(lines).To(HaveLen(3))
	g.Expect(lines[0]).To(HavePrefix("┌─"))
	g.Expect(lines[1]).To(Equal("│ More information at https://x.io"))
	g.Expect(lines[2]).To(HavePrefix("└─"))
}

func TestPlaceholderPrecedence(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(help.Placeholder("dir", "DIR", []string{"a", "b"})).To(Equal("DIR"))
	g.Expect(help.Placeholder("sided", "", []string{"left", "right"})).To(Equal("{left,right}"))
	g.Expect(help.Placeholder("max_speed", "", nil)).To(Equal("MAX_SPEED"))
}

func TestProperty_UsageLinesFitWidth(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		g := NewWithT(t)

		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,12}`), 0, 15, rapid.ID[string]).
			Draw(t, "names")

		flags := make([]help.Flag, 0, len(names))
		for _, name := range names {
			flags = append(flags, help.Flag{
				Long:        name,
				Placeholder: help.Placeholder(name, "", nil),
				Required:    rapid.Bool().Draw(t, "required"),
			})
		}

		usage := help.UsageWithStyles(help.Page{
			Program:  "prog",
			Sections: []help.Section{{Title: "Optional arguments", Flags: flags}},
		}, help.PlainStyles())

		for _, line := range strings.Split(usage, "\n") {
			g.Expect(len(line)).To(BeNumerically("<=", 78), usage)
		}

		for _, name := range names {
			g.Expect(usage).To(ContainSubstring("--" + name + " "))
		}
	})
}
