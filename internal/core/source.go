package core

import (
	"go/ast"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// unexported constants.
const (
	goFilePattern = "*.go"
)

// extractPackagePath parses package path from fully qualified function name.
// It handles various runtime.FuncForPC formats:
// - "github.com/user/repo/pkg.Func" -> "github.com/user/repo/pkg"
// - "github.com/user/repo/pkg.(*Car).Run" -> "github.com/user/repo/pkg"
// - "github.com/user/repo.init.func1" -> "github.com/user/repo"
func extractPackagePath(funcName string) string {
	if funcName == "" {
		return ""
	}

	// Package paths contain dots in the host name, so look after the last slash.
	lastSlash := strings.LastIndex(funcName, "/")
	if lastSlash == -1 {
		dotIdx := strings.Index(funcName, ".")
		if dotIdx == -1 {
			return funcName
		}

		return funcName[:dotIdx]
	}

	afterSlash := funcName[lastSlash+1:]

	dotIdx := strings.Index(afterSlash, ".")
	if dotIdx == -1 {
		return funcName
	}

	return funcName[:lastSlash+1+dotIdx]
}

// packageSiblings parses the other files in file's directory that declare the package pkg.
// Test files are included so targets declared in tests are documented too.
func packageSiblings(file, pkg string) []*ast.File {
	dir := filepath.Dir(file)

	names, err := doublestar.Glob(os.DirFS(dir), goFilePattern)
	if err != nil {
		return nil
	}

	siblings := make([]*ast.File, 0, len(names))

	for _, name := range names {
		path := filepath.Join(dir, name)
		if path == file {
			continue
		}

		f, err := getParsedFile(path)
		if err != nil || f.Name.Name != pkg {
			continue
		}

		siblings = append(siblings, f)
	}

	return siblings
}

// shortFuncName strips the package path from a runtime function name.
func shortFuncName(funcName string) string {
	pkg := extractPackagePath(funcName)
	if pkg == funcName {
		return ""
	}

	return strings.TrimPrefix(funcName, pkg+".")
}
