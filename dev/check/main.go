//go:build dev

// Check runs the repository's test and lint steps.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/toejough/argsynth"
)

// checkArgs selects what to run.
//
// Args:
//
//	step: Either 'test' or 'lint'.
//	cover: The file to write the coverage profile to.
type checkArgs struct {
	Step  string `opt:"default=test"`
	Cover string `opt:"default=coverage.out"`
	Race  bool   `opt:"default=false,desc=Run tests with the race detector."`
}

// check runs one step of the repository checks.
func check(ctx context.Context, args checkArgs) error {
	var cmd *exec.Cmd

	switch args.Step {
	case "lint":
		cmd = exec.CommandContext(ctx, "golangci-lint", "run")
	default:
		testArgs := []string{"test", "-coverprofile=" + args.Cover}
		if args.Race {
			testArgs = append(testArgs, "-race")
		}

		cmd = exec.CommandContext(ctx, "go", append(testArgs, "./...")...)
	}

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args.Step, err)
	}

	return nil
}

func main() {
	argsynth.RunWithOptions(argsynth.Options{
		Metadata: argsynth.Metadata{Program: "check", ProjectURL: argsynth.DetectProjectURL()},
	}, check)
}
