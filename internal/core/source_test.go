package core_test

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/argsynth/internal/core"
)

func TestExtractPackagePath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	for in, want := range map[string]string{
		"github.com/user/repo/pkg.Func":       "github.com/user/repo/pkg",
		"github.com/user/repo/pkg.(*Car).Run": "github.com/user/repo/pkg",
		"github.com/user/repo/pkg.Car.Run":    "github.com/user/repo/pkg",
		"github.com/user/repo.init.func1":     "github.com/user/repo",
		"main.main":                           "main",
		"main":                                "main",
		"":                                    "",
	} {
		g.Expect(core.ExtractPackagePathForTest(in)).To(Equal(want), in)
	}
}

func TestShortFuncName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(core.ShortFuncNameForTest("github.com/user/repo/pkg.Paint")).To(Equal("Paint"))
	g.Expect(core.ShortFuncNameForTest("github.com/user/repo/pkg.(*Car).Run")).To(Equal("(*Car).Run"))
	g.Expect(core.ShortFuncNameForTest("main")).To(BeEmpty())
}

func TestProperty_ExtractedPathIsPrefixWithoutTrailingDot(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		g := NewWithT(t)

		domain := rapid.StringMatching(`[a-z]+\.[a-z]+`).Draw(t, "domain")
		user := rapid.StringMatching(`[a-z][a-z0-9-]*`).Draw(t, "user")
		repo := rapid.StringMatching(`[a-z][a-z0-9-]*`).Draw(t, "repo")
		pkgSegments := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9_]*`), 0, 5).Draw(t, "pkgSegments")
		funcName := rapid.StringMatching(`[A-Z][a-zA-Z0-9]*`).Draw(t, "funcName")

		pkg := domain + "/" + user + "/" + repo
		if len(pkgSegments) > 0 {
			pkg += "/" + strings.Join(pkgSegments, "/")
		}

		g.Expect(core.ExtractPackagePathForTest(pkg + "." + funcName)).To(Equal(pkg))
		g.Expect(core.ShortFuncNameForTest(pkg + "." + funcName)).To(Equal(funcName))
	})
}

func TestDocsForFunctionTarget(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	block, fields, pkg, err := core.DocsForTest(paint)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(block).To(HavePrefix("paint paints a wall.\n"))
	g.Expect(block).To(ContainSubstring("coats: How many coats to apply."))
	g.Expect(fields).To(HaveKeyWithValue("Color", `Color is either "gloss" or "matte".`))
	g.Expect(fields).To(HaveKeyWithValue("Tags", "Tags are labels for the job."))
	g.Expect(pkg).To(Equal("github.com/toejough/argsynth/internal/core_test"))
}

func TestDocsForClassTarget(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	block, _, _, err := core.DocsForTest(car{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(block).To(HavePrefix("car is a simple car.\n"))
	g.Expect(block).To(ContainSubstring("sided: Either 'left' or 'right'."))

	_, fields, _, err := core.DocsForTest(&garage{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fields).To(HaveKeyWithValue("Capacity", "Capacity is the number of cars that fit."))
	g.Expect(fields).To(HaveKeyWithValue("Location", "The directory to park in."))
	g.Expect(fields).To(HaveKeyWithValue("Lights", ""))
}

func TestDocsFollowEmbeddedTypes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, fields, _, err := core.DocsForTest(drive)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fields).To(HaveKey("Cylinders"))
	g.Expect(fields).To(HaveKey("MaxSpeed"))
}

func TestDocsForUndocumentedClosure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	block, fields, _, err := core.DocsForTest(func(paintArgs) {})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(block).To(BeEmpty())
	g.Expect(fields).To(HaveKey("Coats"))
}
