package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExecuteEnv is a RunEnv implementation that captures output for testing.
type ExecuteEnv struct {
	args   []string
	stdout strings.Builder
	stderr strings.Builder
	code   int
}

// NewExecuteEnv returns a RunEnv that feeds args to the parser and captures output.
func NewExecuteEnv(args []string) *ExecuteEnv {
	return &ExecuteEnv{args: args}
}

// Args returns the command line tokens, without the program name.
func (e *ExecuteEnv) Args() []string {
	return e.args
}

// ExitCode returns the code passed to the last Exit call.
func (e *ExecuteEnv) ExitCode() int {
	return e.code
}

// Exit records the code instead of exiting.
func (e *ExecuteEnv) Exit(code int) {
	e.code = code
}

// Stderr returns the captured error buffer.
func (e *ExecuteEnv) Stderr() io.Writer {
	return &e.stderr
}

// Stdout returns the captured output buffer.
func (e *ExecuteEnv) Stdout() io.Writer {
	return &e.stdout
}

// ErrOutput returns everything written to Stderr.
func (e *ExecuteEnv) ErrOutput() string {
	return e.stderr.String()
}

// Output returns everything written to Stdout.
func (e *ExecuteEnv) Output() string {
	return e.stdout.String()
}

// ExecuteResult holds what a captured run produced.
type ExecuteResult struct {
	Output    string
	ErrOutput string
	Value     any
}

// ExitError carries the process exit code a run should end with.
// Code 0 means the run ended early on purpose (help or version output).
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e ExitError) Unwrap() error {
	return e.Err
}

// RunEnv abstracts the process environment for testing.
type RunEnv interface {
	// Args returns the command line tokens, without the program name.
	Args() []string
	Exit(code int)
	Stdout() io.Writer
	Stderr() io.Writer
}

// Execute builds an engine for target, parses args and invokes it, capturing output.
// Args are the command line tokens without the program name.
func Execute(args []string, target any, extra ...any) (ExecuteResult, error) {
	return ExecuteWithOptions(args, Options{}, target, extra...)
}

// ExecuteWithOptions is Execute with explicit options. opts.Args is replaced by args.
func ExecuteWithOptions(args []string, opts Options, target any, extra ...any) (ExecuteResult, error) {
	if args == nil {
		args = []string{}
	}

	opts.Args = args
	env := NewExecuteEnv(args)
	value, err := RunWithEnv(context.Background(), env, opts, target, extra...)

	return ExecuteResult{Output: env.Output(), ErrOutput: env.ErrOutput(), Value: value}, err
}

// OSEnv returns the RunEnv backed by the real process.
func OSEnv() RunEnv {
	return osRunEnv{}
}

// RunWithEnv builds an engine for target inside env and invokes it.
// Errors other than ExitError are reported on env.Stderr and converted to ExitError{Code: 1}.
// When opts.Args is nil, the tokens come from the usual sources with env.Args as the last fallback.
func RunWithEnv(ctx context.Context, env RunEnv, opts Options, target any, extra ...any) (any, error) {
	if opts.Stdout == nil {
		opts.Stdout = env.Stdout()
	}

	if opts.Stderr == nil {
		opts.Stderr = env.Stderr()
	}

	if opts.Args == nil {
		opts.fallbackArgs = env.Args()
	}

	engine, err := New(target, opts)
	if err != nil {
		return nil, reportFailure(opts.Stderr, err)
	}

	value, err := engine.Call(ctx, extra...)
	if err != nil {
		return nil, reportFailure(opts.Stderr, err)
	}

	return value, nil
}

// unexported constants.
const (
	exitFailure = 1
	exitUsage   = 2
)

type osRunEnv struct{}

func (osRunEnv) Args() []string {
	return os.Args[1:]
}

func (osRunEnv) Exit(code int) {
	os.Exit(code)
}

func (osRunEnv) Stderr() io.Writer {
	return os.Stderr
}

func (osRunEnv) Stdout() io.Writer {
	return os.Stdout
}

// reportFailure passes ExitError through and turns anything else into exit code 1.
func reportFailure(w io.Writer, err error) error {
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	fmt.Fprintf(w, "Error: %v\n", err)

	return ExitError{Code: exitFailure, Err: err}
}
