package core

import (
	"go/ast"
	"go/parser"
	"go/token"
	"runtime"
	"strings"
	"sync"
)

// unexported variables.
var (
	cacheLock sync.Mutex
	fileCache = make(map[string]*ast.File)
	fset      = token.NewFileSet()
)

// sourceDocs is the documentation found in a target's source.
type sourceDocs struct {
	// block is the doc comment of the function, or of the struct type of a class target.
	block string
	// fields maps Go field names of the parameter struct to their comments.
	fields map[string]string
	// packageDoc is the package doc comment, if any file of the package has one.
	packageDoc string
	// packagePath is the import path of the package declaring the target.
	packagePath string
}

// lookupDocs reads the source files of the package declaring t.
// Missing or unparsable source yields empty documentation, not an error.
func lookupDocs(t *target) sourceDocs {
	docs := sourceDocs{fields: map[string]string{}, packagePath: extractPackagePath(t.symbol)}

	file := sourceFile(t.pc)
	if file == "" {
		return docs
	}

	anchor, err := getParsedFile(file)
	if err != nil {
		return docs
	}

	files := append([]*ast.File{anchor}, packageSiblings(file, anchor.Name.Name)...)

	for _, f := range files {
		if f.Doc != nil {
			docs.packageDoc = f.Doc.Text()
			break
		}
	}

	if t.kind == functionTarget {
		docs.block = findFuncDoc(anchor, shortFuncName(t.symbol))
	}

	if t.params == nil || t.params.Name() == "" {
		return docs
	}

	spec, genDecl := findTypeSpec(files, t.params.Name())
	if spec == nil {
		return docs
	}

	if t.kind == classTarget {
		docs.block = typeDoc(spec, genDecl)
	}

	collectFieldDocs(files, spec, docs.fields, map[string]bool{})

	return docs
}

// collectFieldDocs records the doc or line comment of every field of spec, following
// embedded struct types declared in the same package.
func collectFieldDocs(files []*ast.File, spec *ast.TypeSpec, out map[string]string, visited map[string]bool) {
	visited[spec.Name.Name] = true

	structType, ok := spec.Type.(*ast.StructType)
	if !ok {
		return
	}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			embedded := embeddedTypeName(field.Type)
			if embedded == "" || visited[embedded] {
				continue
			}

			if inner, _ := findTypeSpec(files, embedded); inner != nil {
				collectFieldDocs(files, inner, out, visited)
			}

			continue
		}

		text := field.Doc.Text()
		if text == "" {
			text = field.Comment.Text()
		}

		for _, name := range field.Names {
			if _, ok := out[name.Name]; !ok {
				out[name.Name] = strings.TrimSpace(text)
			}
		}
	}
}

func embeddedTypeName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}

	return ""
}

// findFuncDoc returns the doc comment of the top-level function named name.
func findFuncDoc(f *ast.File, name string) string {
	var doc string

	ast.Inspect(f, func(n ast.Node) bool {
		fnDecl, ok := n.(*ast.FuncDecl)
		if !ok || fnDecl.Recv != nil || fnDecl.Name.Name != name {
			return true
		}

		doc = fnDecl.Doc.Text()

		return false
	})

	return doc
}

// findTypeSpec finds the declaration of the named type in files.
func findTypeSpec(files []*ast.File, name string) (*ast.TypeSpec, *ast.GenDecl) {
	for _, f := range files {
		for _, decl := range f.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, s := range genDecl.Specs {
				if spec, ok := s.(*ast.TypeSpec); ok && spec.Name.Name == name {
					return spec, genDecl
				}
			}
		}
	}

	return nil, nil
}

func getParsedFile(path string) (*ast.File, error) {
	cacheLock.Lock()
	defer cacheLock.Unlock()

	if f, ok := fileCache[path]; ok {
		return f, nil
	}

	// Mode: ParseComments is essential
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	fileCache[path] = f

	return f, nil
}

// sourceFile returns the file that defines the function at pc.
func sourceFile(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}

	file, _ := fn.FileLine(fn.Entry())
	if !strings.HasSuffix(file, ".go") {
		return ""
	}

	return file
}

// typeDoc prefers the TypeSpec's own doc and falls back to the GenDecl's when it holds a single spec.
func typeDoc(spec *ast.TypeSpec, genDecl *ast.GenDecl) string {
	if spec.Doc != nil {
		return spec.Doc.Text()
	}

	if genDecl != nil && len(genDecl.Specs) == 1 {
		return genDecl.Doc.Text()
	}

	return ""
}
