package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/toejough/argsynth/internal/docstring"
	"github.com/toejough/argsynth/internal/help"
	"github.com/toejough/argsynth/internal/logging"
)

// Engine derives a command line from one target and dispatches parsed values to it.
// An Engine is built once and is not safe for concurrent Parse calls that share writers.
type Engine struct {
	target    *target
	params    []Parameter
	spec      Specification
	helpText  string
	opts      Options
	stdout    io.Writer
	stderr    io.Writer
	logger    *slog.Logger
	extractor ParameterExtractor
}

// Options configures an Engine. The zero value reads os.Args and writes to the process streams.
type Options struct {
	Metadata Metadata
	// Args are the command line tokens, without the program name. Nil means "not given".
	Args []string
	// Argv is a shell-quoted command line used when Args is nil.
	Argv   string
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives debug logs. Nil means logging.FromEnv(os.Stderr).
	Logger *slog.Logger

	fallbackArgs []string
}

// Values maps argument names to converted values. Arguments that were neither given
// nor defaulted are absent.
type Values map[string]any

// New binds target and derives its specification. It fails before any parsing when the
// target is not a function or a struct type with a Run method.
func New(target any, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromEnv(os.Stderr)
	}

	bound, err := bindTarget(target)
	if err != nil {
		return nil, err
	}

	logger.Debug("target bound", slog.String("kind", bound.kind.String()), slog.String("symbol", bound.symbol))

	engine := &Engine{
		target:    bound,
		opts:      opts,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		logger:    logger,
		extractor: bound,
	}

	if engine.stdout == nil {
		engine.stdout = os.Stdout
	}

	if engine.stderr == nil {
		engine.stderr = os.Stderr
	}

	engine.params, err = engine.extractor.Parameters()
	if err != nil {
		return nil, err
	}

	docs := lookupDocs(bound)
	args := describeParameters(engine.params, docs, logger)

	allocateShortLetters(args, logger)

	engine.spec = assemble(args, resolveMetadata(opts.Metadata, docs))
	engine.helpText = help.Render(engine.spec.Page())

	return engine, nil
}

// Arguments returns the derived arguments in declaration order.
func (e *Engine) Arguments() []Argument {
	return append([]Argument(nil), e.spec.Arguments...)
}

// Call parses the command line and invokes the target. Extra values are passed to a
// class target's Run method after any context.Context parameter; function targets ignore them.
func (e *Engine) Call(ctx context.Context, extra ...any) (any, error) {
	values, err := e.Parse(ctx)
	if err != nil {
		return nil, err
	}

	return e.Invoke(ctx, values, extra...)
}

// Dump writes the specification as YAML.
func (e *Engine) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd // conventional yaml indent

	err := enc.Encode(e.spec)
	if err != nil {
		return fmt.Errorf("encoding specification: %w", err)
	}

	return enc.Close()
}

// Help returns the rendered help page.
func (e *Engine) Help() string {
	return e.helpText
}

// Invoke dispatches values to the target without parsing.
func (e *Engine) Invoke(ctx context.Context, values Values, extra ...any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	e.logger.Debug("invoking", slog.String("kind", e.target.kind.String()), slog.Int("extra", len(extra)))

	return e.target.invoke(ctx, e.params, values, extra)
}

// Markdown renders the help page as markdown.
func (e *Engine) Markdown() string {
	return help.Markdown(e.spec.Page())
}

// Parse reads the command line tokens and converts them to Values.
// --help and --version print to Stdout and return ExitError{Code: 0}; malformed input
// prints usage to Stderr and returns ExitError{Code: 2}.
func (e *Engine) Parse(ctx context.Context) (Values, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	tokens, err := e.tokens()
	if err != nil {
		return nil, e.usageError(err)
	}

	return e.parseTokens(ctx, tokens)
}

// Specification returns the assembled specification.
func (e *Engine) Specification() Specification {
	return e.spec
}

// tokens picks the command line: Args, then Argv, then $ARGSYNTH_ARGV, then the process arguments.
func (e *Engine) tokens() ([]string, error) {
	switch {
	case e.opts.Args != nil:
		return e.opts.Args, nil
	case e.opts.Argv != "":
		return splitArgv(e.opts.Argv)
	case os.Getenv(EnvArgv) != "":
		e.logger.Debug("command line from environment", slog.String("var", EnvArgv))
		return splitArgv(os.Getenv(EnvArgv))
	case e.opts.fallbackArgs != nil:
		return e.opts.fallbackArgs, nil
	default:
		return os.Args[1:], nil
	}
}

// describeParameters builds one Argument per parameter. The description is the desc tag,
// then the doc block's entry for the parameter, then the field's own comment.
func describeParameters(params []Parameter, docs sourceDocs, logger *slog.Logger) []Argument {
	parsed := docstring.Parse(docs.block)
	args := make([]Argument, len(params))

	for i, param := range params {
		desc, source := param.tagDesc, "tag"

		if !param.hasDesc {
			if text, ok := parsed.Lookup(param.Name); ok {
				desc, source = text, "doc"
			} else {
				desc, source = docs.fields[param.field], "field"
			}
		}

		args[i] = newArgument(param, desc)

		logger.Debug("argument described",
			slog.String("argument", param.Name),
			slog.String("source", source),
			slog.Any("choices", args[i].Choices),
			slog.String("metavar", args[i].Metavar))
	}

	return args
}

func splitArgv(argv string) ([]string, error) {
	tokens, err := shellquote.Split(argv)
	if err != nil {
		return nil, fmt.Errorf("splitting command line %q: %w", argv, err)
	}

	return tokens, nil
}
