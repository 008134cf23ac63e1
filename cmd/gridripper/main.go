// Command gridripper exports the text of PDF files, with the position of
// every phrase on its page, to a spreadsheet.
//
// Usage:
//
//	gridripper rip [flags] OUTPUT INPUT...
//	gridripper inspect FILE
//
// INPUT may be a doublestar glob such as "statements/**/*.pdf".
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(2)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gridripper",
		Short: "Export positioned PDF text to spreadsheets",
		Long: `gridripper pulls the text out of PDF files (or scanned pages, when built
with OCR support) and writes one spreadsheet row per phrase, word or
character, together with its position on the page, so the original rows
and columns can be rebuilt by sorting and filtering.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRipCommand(), newInspectCommand())
	return root
}

// newLogger creates the logger for a command run. Diagnostics go to
// standard error so console output stays clean.
func newLogger(verbose, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case quiet:
		logger.SetLevel(logrus.WarnLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func usageError(format string, args ...interface{}) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}
