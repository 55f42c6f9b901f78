package argsynth

import (
	"context"
	"errors"
	"os"

	"github.com/toejough/argsynth/internal/core"
)

// --- Re-exported types from core ---

// Argument is the command line view of one target parameter.
type Argument = core.Argument

// Engine derives a command line from a target and dispatches to it.
type Engine = core.Engine

// ExecuteResult holds the captured output and return value of Execute.
type ExecuteResult = core.ExecuteResult

// ExitError carries the exit code a run ends with. Code 0 follows --help and --version.
type ExitError = core.ExitError

// Group is a titled partition of a specification's arguments.
type Group = core.Group

// Metadata names the program, its title, version and project URL.
type Metadata = core.Metadata

// Options configures an Engine.
type Options = core.Options

// ReservedFlag is one of the built-in --help and --version switches.
type ReservedFlag = core.ReservedFlag

// Specification is the assembled command line surface of a target.
type Specification = core.Specification

// TargetKindError reports a target that cannot be driven from a command line.
type TargetKindError = core.TargetKindError

// Values maps argument names to parsed, typed values.
type Values = core.Values

// Re-exported constants.
const (
	EnvArgv            = core.EnvArgv
	EnvProgram         = core.EnvProgram
	OptionalGroupTitle = core.OptionalGroupTitle
	RequiredGroupTitle = core.RequiredGroupTitle
)

// Re-exported errors.
//
//nolint:gochecknoglobals // sentinel errors callers match with errors.Is
var (
	ErrDuplicateParameter = core.ErrDuplicateParameter
	ErrInvalidArgument    = core.ErrInvalidArgument
	ErrInvalidDefault     = core.ErrInvalidDefault
	ErrTooManyArguments   = core.ErrTooManyArguments
	ErrUnsupportedType    = core.ErrUnsupportedType
)

// --- Public API ---

// DetectProjectURL returns the https form of the origin remote of the enclosing git
// checkout, or "". Pass it as Metadata.ProjectURL to show it in the help epilog.
func DetectProjectURL() string {
	return core.DetectProjectURL()
}

// Execute parses args (without the program name) for target and calls it, capturing
// output instead of exiting. It is meant for tests.
func Execute(args []string, target any, extra ...any) (ExecuteResult, error) {
	return core.Execute(args, target, extra...)
}

// ExecuteWithOptions is Execute with options. opts.Args is replaced by args.
func ExecuteWithOptions(args []string, opts Options, target any, extra ...any) (ExecuteResult, error) {
	return core.ExecuteWithOptions(args, opts, target, extra...)
}

// New binds target and derives its specification without parsing anything.
func New(target any, opts Options) (*Engine, error) {
	return core.New(target, opts)
}

// Run parses the process command line for target, calls it with extra, and exits
// on failure: 0 after --help or --version, 2 on usage errors, 1 when the target fails.
func Run(target any, extra ...any) any {
	return RunWithOptions(Options{}, target, extra...)
}

// RunWithOptions is Run with options.
func RunWithOptions(opts Options, target any, extra ...any) any {
	env := core.OSEnv()

	value, err := core.RunWithEnv(context.Background(), env, opts, target, extra...)
	if err != nil {
		var exitErr ExitError
		if errors.As(err, &exitErr) {
			env.Exit(exitErr.Code)
		}

		os.Exit(1)
	}

	return value
}
