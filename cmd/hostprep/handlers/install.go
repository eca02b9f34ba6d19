package handlers

import (
	"context"

	"github.com/imamik/hostprep/internal/provisioning"
	"github.com/imamik/hostprep/internal/provisioning/procedure"
	"github.com/imamik/hostprep/internal/ui/report"
)

// runProcedure executes the install phases (for testing injection).
var runProcedure = procedure.Run

// Install provisions the container runtime on the target.
//
// The procedure runs in a fixed order and stops at the first failure:
//  1. Refuses to run as root and checks the platform release
//  2. Installs prerequisites and removes conflicting packages
//  3. Registers the upstream repository and its signing key
//  4. Installs the runtime, configures group, services and daemon.json
//  5. Runs a test container and reports the installed versions
//
// Metrics are written to opts.MetricsFile whether or not the run succeeds.
func Install(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return err
	}

	runner, user, err := newRunner(opts, cfg)
	if err != nil {
		return err
	}

	observer := newObserver(opts)
	pctx := provisioning.NewContext(ctx, cfg, runner, observer, newConfirmer(opts.AssumeYes), user)

	runErr := runProcedure(pctx)

	if opts.MetricsFile != "" {
		if err := pctx.Metrics.WriteTextfile(opts.MetricsFile); err != nil {
			observer.Printf("warning: %v", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	report.Printer{W: stdout, Styled: isStdoutTerminal()}.Install(runner.Target(), pctx.User, pctx.State)
	return nil
}
