package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/cloudposse/testsift/cmd"
	errUtils "github.com/cloudposse/testsift/errors"
	log "github.com/cloudposse/testsift/pkg/logger"
)

func main() {
	// Use errUtils.OsExit to allow test interception.
	errUtils.OsExit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := cmd.NewApp()
	err := cmd.Execute(ctx, app, args)
	if err == nil {
		return 0
	}

	// The filtered output already explains a failing run.
	if !errors.Is(err, errUtils.ErrTestFailuresFound) {
		os.Stderr.WriteString(errUtils.Format(err) + "\n")
	}

	exitCode := errUtils.GetExitCode(err)
	if errors.Is(err, context.Canceled) {
		exitCode = 130
	}
	log.Debug("Exiting with exit code", "code", exitCode)
	return exitCode
}
