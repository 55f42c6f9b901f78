package core

import (
	"io"
	"log/slog"
)

// Exported variables.
var (
	CamelToSnakeForTest          = camelToSnake
	ConvertValueForTest          = convertValue
	ExtractPackagePathForTest    = extractPackagePath
	FlattenDescriptionForTest    = flattenDescription
	InferChoicesForTest          = inferChoices
	InferMetavarForTest          = inferMetavar
	NormalizeRemoteURLForTest    = normalizeRemoteURL
	OriginURLForTest             = originURL
	ProjectURLFromDirForTest     = projectURLFromDir
	ShortFuncNameForTest         = shortFuncName
	ShortLetterCandidatesForTest = shortLetterCandidates
	VersionStringForTest         = versionString
)

// AllocateForTest runs the short-flag allocator over names and returns the letters it assigned.
func AllocateForTest(names []string) []rune {
	args := make([]Argument, len(names))
	for i, name := range names {
		args[i].Name = name
	}

	allocateShortLetters(args, slog.New(slog.DiscardHandler))

	letters := make([]rune, len(args))
	for i, arg := range args {
		letters[i] = arg.ShortLetter
	}

	return letters
}

// AssembleForTest builds a specification from args and metadata.
func AssembleForTest(args []Argument, meta Metadata) Specification {
	return assemble(args, meta)
}

// DetectProjectURLWithDepsForTest runs project URL detection with injected working directory and file access.
func DetectProjectURLWithDepsForTest(getwd func() (string, error), open func(string) (io.ReadCloser, error)) string {
	return detectProjectURL(getwd, open)
}

// DocsForTest returns the documentation block, field comments and package path found for target.
func DocsForTest(target any) (string, map[string]string, string, error) {
	bound, err := bindTarget(target)
	if err != nil {
		return "", nil, "", err
	}

	docs := lookupDocs(bound)

	return docs.block, docs.fields, docs.packagePath, nil
}

// NewArgumentForTest builds the Argument for a parameter with the given description.
func NewArgumentForTest(param Parameter, desc string) Argument {
	return newArgument(param, desc)
}

// ParametersForTest binds target and extracts its parameters.
func ParametersForTest(target any) ([]Parameter, error) {
	bound, err := bindTarget(target)
	if err != nil {
		return nil, err
	}

	return bound.Parameters()
}

// TargetKindForTest binds target and reports its kind.
func TargetKindForTest(target any) (string, error) {
	bound, err := bindTarget(target)
	if err != nil {
		return "", err
	}

	return bound.kind.String(), nil
}
