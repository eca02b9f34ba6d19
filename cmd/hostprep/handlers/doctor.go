package handlers

import (
	"context"

	"github.com/imamik/hostprep/internal/ui/report"
	"github.com/imamik/hostprep/internal/util/prerequisites"
)

// checkAllPrereqs runs prerequisite checks (for testing injection).
var checkAllPrereqs = prerequisites.CheckAll

// Doctor checks that the target has the tools the install procedure invokes.
// It changes nothing on the target.
func Doctor(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}

	runner, _, err := newRunner(opts, cfg)
	if err != nil {
		return err
	}

	results, err := checkAllPrereqs(ctx, runner)
	if err != nil {
		return err
	}

	report.Printer{W: stdout, Styled: isStdoutTerminal()}.Tools(runner.Target(), results)
	return results.Error()
}
