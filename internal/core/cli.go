package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"

	"github.com/toejough/argsynth/internal/help"
)

// unexported constants.
const (
	endOfFlags           = "--"
	helpMetadataKey      = "argsynth.help"
	helpTemplate         = `{{index .Metadata "argsynth.help"}}`
	maxSuggestDistance   = 2
	undefinedFlagMessage = "flag provided but not defined: -"
)

// parseOutcome collects what the command action saw.
type parseOutcome struct {
	dispatched bool
	raw        map[string]string
}

// command builds the urfave/cli command for one parse. Flags hold parse state,
// so every parse gets a fresh command.
func (e *Engine) command(outcome *parseOutcome) *cli.Command {
	flags := make([]cli.Flag, 0, len(e.spec.Arguments)+len(e.spec.Reserved))

	for _, arg := range e.spec.Arguments {
		flags = append(flags, e.argumentFlag(arg))
	}

	for _, reserved := range e.spec.Reserved {
		flag := &cli.BoolFlag{
			Name:        reserved.Long,
			Aliases:     []string{reserved.Short},
			Usage:       reserved.Help,
			Category:    OptionalGroupTitle,
			HideDefault: true,
			Local:       true,
		}

		if reserved.Long == versionFlag {
			flag.Action = func(_ context.Context, _ *cli.Command, _ bool) error {
				fmt.Fprintln(e.stdout, e.spec.Version)
				return errVersionShown
			}
		}

		flags = append(flags, flag)
	}

	return &cli.Command{
		Name:                          e.spec.Program,
		Usage:                         e.spec.Title,
		Flags:                         flags,
		HideHelp:                      true,
		HideHelpCommand:               true,
		HideVersion:                   true,
		Writer:                        e.stdout,
		ErrWriter:                     e.stderr,
		CustomRootCommandHelpTemplate: helpTemplate,
		Metadata:                      map[string]any{helpMetadataKey: e.helpText},
		ExitErrHandler:                func(context.Context, *cli.Command, error) {},
		OnUsageError: func(_ context.Context, _ *cli.Command, err error, _ bool) error {
			return e.usageError(err)
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return e.usageError(fmt.Errorf("%w: %s", errUnrecognizedArguments, strings.Join(cmd.Args().Slice(), " ")))
			}

			for _, arg := range e.spec.Arguments {
				if cmd.IsSet(arg.Name) {
					outcome.raw[arg.Name] = cmd.String(arg.Name)
				}
			}

			outcome.dispatched = true

			return nil
		},
	}
}

// argumentFlag maps an Argument onto a string flag. Values are converted after parsing;
// the validator only rejects what conversion or the choice set would reject.
func (e *Engine) argumentFlag(arg Argument) *cli.StringFlag {
	param := e.params[arg.Position]

	flag := &cli.StringFlag{
		Name:        arg.Name,
		Usage:       strings.TrimSpace(arg.Help),
		Value:       arg.DefaultText,
		Required:    arg.Required,
		HideDefault: !arg.HasDefault,
		Category:    OptionalGroupTitle,
		Local:       true,
		Validator: func(value string) error {
			if arg.Choices != nil && !slices.Contains(arg.Choices, value) {
				return fmt.Errorf("invalid choice: %q (choose from %s)", value, quotedList(arg.Choices))
			}

			_, err := convertValue(param.Type, value)

			return err
		},
	}

	if arg.Required {
		flag.Category = RequiredGroupTitle
	}

	if arg.ShortLetter != 0 {
		flag.Aliases = []string{arg.Short()}
	}

	return flag
}

// parseTokens runs the parser over tokens and converts the results.
func (e *Engine) parseTokens(ctx context.Context, tokens []string) (Values, error) {
	outcome := &parseOutcome{raw: map[string]string{}}

	tokens = truncateAtHelp(splitEmptyAssignments(tokens))

	e.logger.Debug("parsing", slog.String("program", e.spec.Program), slog.Any("tokens", tokens))

	err := e.command(outcome).Run(ctx, append([]string{e.spec.Program}, tokens...))

	var exitErr ExitError

	switch {
	case errors.Is(err, errVersionShown):
		return nil, ExitError{Code: 0}
	case errors.As(err, &exitErr):
		return nil, exitErr
	case err != nil:
		return nil, e.usageError(err)
	case !outcome.dispatched:
		// help was printed
		return nil, ExitError{Code: 0}
	}

	values := make(Values, len(e.params))

	for _, param := range e.params {
		raw, ok := outcome.raw[param.Name]
		if !ok {
			if param.HasDefault {
				values[param.Name] = param.Default
			}

			continue
		}

		value, err := convertValue(param.Type, raw)
		if err != nil {
			return nil, e.usageError(fmt.Errorf("invalid value %q for flag --%s: %w", raw, param.Name, err))
		}

		values[param.Name] = value
	}

	return values, nil
}

// splitEmptyAssignments rewrites `--name=` as `--name ""`, which the parser accepts.
func splitEmptyAssignments(tokens []string) []string {
	out := make([]string, 0, len(tokens))

	for i, token := range tokens {
		if token == endOfFlags {
			return append(out, tokens[i:]...)
		}

		name, empty := strings.CutSuffix(token, "=")
		if empty && strings.HasPrefix(name, "-") && strings.Trim(name, "-") != "" && !strings.Contains(name, "=") {
			out = append(out, name, "")
			continue
		}

		out = append(out, token)
	}

	return out
}

// truncateAtHelp drops the tokens after the first help switch. Parsing stops there,
// so only earlier tokens can still fail.
func truncateAtHelp(tokens []string) []string {
	for i, token := range tokens {
		switch token {
		case endOfFlags:
			return tokens
		case "--" + helpFlag, "-" + helpShort:
			return tokens[:i+1]
		}
	}

	return tokens
}

// suggestion names the closest long flag to an undefined one, if any is close enough.
func (e *Engine) suggestion(err error) string {
	unknown, ok := strings.CutPrefix(err.Error(), undefinedFlagMessage)
	if !ok {
		return ""
	}

	unknown = strings.TrimLeft(unknown, "-")
	best, bestDistance := "", maxSuggestDistance+1

	names := make([]string, 0, len(e.spec.Arguments)+len(e.spec.Reserved))
	for _, arg := range e.spec.Arguments {
		names = append(names, arg.Name)
	}

	for _, reserved := range e.spec.Reserved {
		names = append(names, reserved.Long)
	}

	for _, name := range names {
		if distance := levenshtein.ComputeDistance(unknown, name); distance < bestDistance {
			best, bestDistance = name, distance
		}
	}

	return best
}

// usageError reports err with the usage summary on stderr and returns exit code 2.
func (e *Engine) usageError(err error) error {
	var exitErr ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	e.logger.Debug("usage error", slog.String("error", err.Error()))

	writeUsageError(e.stderr, e.spec, err, e.suggestion(err))

	return ExitError{Code: exitUsage, Err: err}
}

// convertValue converts a command line string to a value of type t.
func convertValue(t reflect.Type, raw string) (any, error) {
	value := reflect.New(t).Elem()

	err := setFieldFromString(value, raw)
	if err != nil {
		return nil, err
	}

	return value.Interface(), nil
}

func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}

	return strings.Join(quoted, ", ")
}

func writeUsageError(w io.Writer, spec Specification, err error, suggestion string) {
	fmt.Fprintln(w, help.StripANSI(help.UsageWithStyles(spec.Page(), help.PlainStyles())))
	fmt.Fprintf(w, "%s: error: %v\n", spec.Program, err)

	if suggestion != "" {
		fmt.Fprintf(w, "Did you mean --%s?\n", suggestion)
	}
}
