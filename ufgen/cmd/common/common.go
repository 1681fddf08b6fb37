// Package common implements the common initialization shared across
// all ufgen sub-commands.
package common

import (
	"fmt"
	"os"
)

// Init performs the common initialization across all commands.  It
// must be called at the start of every sub-command's run function,
// after the command line and config file have been parsed.
func Init() error {
	initFns := []func() error{
		initLogging,
	}

	for _, fn := range initFns {
		if err := fn(); err != nil {
			return err
		}
	}

	return nil
}

// EarlyLogAndExit reports the provided error to stderr and terminates
// the process with a non-zero status.  It is intended for failures
// that occur before the logging system is usable.
func EarlyLogAndExit(err error) {
	fmt.Fprintln(os.Stderr, err) // nolint: errcheck
	os.Exit(1)
}
