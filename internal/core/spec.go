package core

import (
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/toejough/argsynth/internal/help"
)

// Exported constants.
const (
	// EnvProgram overrides the derived program name.
	EnvProgram = "ARGSYNTH_PROG"
	// EnvArgv supplies the command line as one shell-quoted string, replacing os.Args.
	EnvArgv            = "ARGSYNTH_ARGV"
	OptionalGroupTitle = "Optional arguments"
	RequiredGroupTitle = "Required arguments"
)

// Group is a titled partition of the arguments.
type Group struct {
	Title     string     `yaml:"title"`
	Arguments []Argument `yaml:"arguments"`
}

// Metadata describes the program around a target. Empty fields are derived.
type Metadata struct {
	// Program defaults to $ARGSYNTH_PROG, then the binary name for package main,
	// then the last element of the module or package path.
	Program string
	// Title defaults to the package doc comment.
	Title string
	// Version defaults to the main module version from build info.
	Version string
	// ProjectURL has no default. DetectProjectURL can supply one.
	ProjectURL string
}

// ReservedFlag is a built-in switch that every command line has.
type ReservedFlag struct {
	Long  string `yaml:"long"`
	Short string `yaml:"short"`
	Help  string `yaml:"help"`
}

// Specification is the assembled command line surface of one target.
type Specification struct {
	Program   string         `yaml:"program"`
	Title     string         `yaml:"title,omitempty"`
	Epilog    string         `yaml:"epilog,omitempty"`
	Version   string         `yaml:"version"`
	Arguments []Argument     `yaml:"arguments"`
	Groups    []Group        `yaml:"groups"`
	Reserved  []ReservedFlag `yaml:"reserved"`
}

// Page converts the specification to the help package's layout model.
// Reserved flags are listed last in the optional group.
func (s Specification) Page() help.Page {
	page := help.Page{Program: s.Program, Title: s.Title, Epilog: s.Epilog}

	for _, group := range s.Groups {
		section := help.Section{Title: group.Title}

		for _, arg := range group.Arguments {
			section.Flags = append(section.Flags, help.Flag{
				Long:        arg.Name,
				Short:       arg.Short(),
				Placeholder: help.Placeholder(arg.Name, arg.Metavar, arg.Choices),
				Help:        arg.Help,
				Default:     arg.DefaultText,
				Required:    arg.Required,
			})
		}

		if group.Title == OptionalGroupTitle {
			for _, reserved := range s.Reserved {
				section.Flags = append(section.Flags, help.Flag{
					Long: reserved.Long, Short: reserved.Short, Help: reserved.Help, Switch: true,
				})
			}
		}

		page.Sections = append(page.Sections, section)
	}

	return page
}

// unexported constants.
const (
	develVersion = "(devel)"
	helpFlag     = "help"
	helpShort    = "h"
	mainPackage  = "main"
	versionFlag  = "version"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // the built-in switches, in display order
	reservedFlags = []ReservedFlag{
		{Long: helpFlag, Short: helpShort, Help: "Show this help message and exit."},
		{Long: versionFlag, Short: "v", Help: "Show program's version number and exit."},
	}
)

// assemble builds the specification. args must already carry their short letters.
// When there is an epilog, the last required argument's help loses one trailing newline.
func assemble(args []Argument, meta Metadata) Specification {
	spec := Specification{
		Program:   meta.Program,
		Title:     strings.TrimSpace(meta.Title),
		Epilog:    help.Epilog(meta.ProjectURL),
		Version:   versionString(meta),
		Arguments: append([]Argument(nil), args...),
		Reserved:  append([]ReservedFlag(nil), reservedFlags...),
	}

	if spec.Epilog != "" {
		for i := len(spec.Arguments) - 1; i >= 0; i-- {
			if spec.Arguments[i].Required {
				spec.Arguments[i].Help = strings.TrimSuffix(spec.Arguments[i].Help, "\n")
				break
			}
		}
	}

	required := Group{Title: RequiredGroupTitle}
	optional := Group{Title: OptionalGroupTitle}

	for _, arg := range spec.Arguments {
		if arg.Required {
			required.Arguments = append(required.Arguments, arg)
		} else {
			optional.Arguments = append(optional.Arguments, arg)
		}
	}

	spec.Groups = []Group{required, optional}

	return spec
}

// buildVersion is the main module version, unless it is a development build.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == develVersion {
		return ""
	}

	return info.Main.Version
}

// programName derives the program name from the package that declares the target.
func programName(pkgPath string) string {
	if env := os.Getenv(EnvProgram); env != "" {
		return env
	}

	if pkgPath == mainPackage || pkgPath == "" {
		return strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	}

	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Path != "" &&
		(pkgPath == info.Main.Path || strings.HasPrefix(pkgPath, info.Main.Path+"/")) {
		return path.Base(info.Main.Path)
	}

	return path.Base(pkgPath)
}

// resolveMetadata fills the empty fields of explicit from the environment and the source.
func resolveMetadata(explicit Metadata, docs sourceDocs) Metadata {
	meta := explicit

	if meta.Program == "" {
		meta.Program = programName(docs.packagePath)
	}

	if meta.Title == "" {
		meta.Title = docs.packageDoc
	}

	if meta.Version == "" {
		meta.Version = buildVersion()
	}

	return meta
}

// versionString is "<program> version <version>", or just the program without a version.
func versionString(meta Metadata) string {
	if meta.Version == "" {
		return meta.Program
	}

	return meta.Program + " " + versionFlag + " " + meta.Version
}
