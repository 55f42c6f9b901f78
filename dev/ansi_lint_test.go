package dev

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	. "github.com/onsi/gomega"
)

// TestLint_NoDirectANSICodesOutsideHelp keeps escape sequences inside internal/help,
// where lipgloss styles own them.
func TestLint_NoDirectANSICodesOutsideHelp(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root, err := repoRoot()
	g.Expect(err).NotTo(HaveOccurred())

	fsys := os.DirFS(root)

	paths, err := doublestar.Glob(fsys, "**/*.go", doublestar.WithFilesOnly())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(paths).NotTo(BeEmpty())

	var violations []string

	for _, path := range paths {
		if skipForANSILint(path) {
			continue
		}

		content, err := fs.ReadFile(fsys, path)
		g.Expect(err).NotTo(HaveOccurred())

		for i, line := range strings.Split(string(content), "\n") {
			if ansiPattern.MatchString(line) {
				violations = append(violations, fmt.Sprintf("%s:%d: %s", path, i+1, strings.TrimSpace(line)))
			}
		}
	}

	g.Expect(violations).To(BeEmpty(),
		"escape codes outside internal/help:\n%s\nuse the lipgloss styles instead.",
		strings.Join(violations, "\n"))
}

// unexported variables.
var (
	//nolint:gochecknoglobals // compiled once
	ansiPattern = regexp.MustCompile(`\\x1b\[|\\033\[|\\e\[`)
	//nolint:gochecknoglobals // patterns relative to the repository root
	ansiLintSkips = []string{"internal/help/**", "_examples/**", "**/*_test.go", "vendor/**"}
	errNoGoMod    = errors.New("no go.mod in any parent directory")
)

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoGoMod
		}

		dir = parent
	}
}

func skipForANSILint(path string) bool {
	for _, pattern := range ansiLintSkips {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}

	return false
}
