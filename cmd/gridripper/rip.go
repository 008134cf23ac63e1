package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gridripper "github.com/michaelaaronlevy/grid-ripper"
	"github.com/michaelaaronlevy/grid-ripper/export"
	"github.com/michaelaaronlevy/grid-ripper/model"
	"github.com/michaelaaronlevy/grid-ripper/reader"
	"github.com/michaelaaronlevy/grid-ripper/text"
)

// pollInterval is how often a running export reports its status.
const pollInterval = 500 * time.Millisecond

type ripOptions struct {
	mode              string
	format            string
	columns           string
	preamble          bool
	title             string
	pageThreshold     int
	documentThreshold int
	langs             []string
	dpi               float64
	minWidth          int
	verbose           bool
	quiet             bool
}

func newRipCommand() *cobra.Command {
	opts := &ripOptions{}
	cmd := &cobra.Command{
		Use:   "rip [flags] OUTPUT INPUT...",
		Short: "Export the text of the input files to OUTPUT",
		Long: `Export the text of every input file, in order, to OUTPUT.

The output format follows the extension of OUTPUT (.ods, .xlsx, .csv,
.html) unless --format is given. Use "-" as OUTPUT to print rows to
standard output.

Exit status is 0 when every file was exported, 1 when some files were
skipped and 2 when the export was aborted.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRip(opts, args[0], args[1:])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.mode, "mode", "m", "phrases", "Row granularity: phrases, words, or characters")
	flags.StringVarP(&opts.format, "format", "f", "", "Output format: ods, xlsx, csv, html, or console (default: from OUTPUT)")
	flags.StringVarP(&opts.columns, "columns", "c", "default", `Comma separated columns to export, or "all"/"default"`)
	flags.BoolVar(&opts.preamble, "preamble", false, "Write a title row and the list of input files before the header")
	flags.StringVar(&opts.title, "title", gridripper.DefaultTitle, "Title written in the preamble")
	flags.IntVar(&opts.pageThreshold, "page-threshold", export.DefaultPageThreshold, "Rows per sheet before a page break starts a new sheet")
	flags.IntVar(&opts.documentThreshold, "document-threshold", export.DefaultDocumentThreshold, "Rows per sheet before a new input file starts a new sheet")
	flags.StringSliceVar(&opts.langs, "lang", []string{"eng"}, "OCR languages for image inputs")
	flags.Float64Var(&opts.dpi, "dpi", 300, "Resolution of image inputs, for converting pixels to points")
	flags.IntVar(&opts.minWidth, "min-width", reader.DefaultImageOptions().MinWidth, "Upscale narrower images to this width before OCR (0 disables)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress and debug details")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Log warnings and errors only")

	return cmd
}

func runRip(opts *ripOptions, output string, patterns []string) error {
	logger := newLogger(opts.verbose, opts.quiet)

	mode, err := text.ParseMode(opts.mode)
	if err != nil {
		return usageError("%v", err)
	}
	cols, err := model.ParseColumns(opts.columns)
	if err != nil {
		return usageError("invalid --columns: %v", err)
	}
	if cols.Len() == 0 {
		return usageError("--columns selects no column")
	}
	f, err := resolveFormat(output, opts.format)
	if err != nil {
		return usageError("%v", err)
	}

	files, err := expandInputs(patterns, logger)
	if err != nil {
		return usageError("%v", err)
	}

	policy := export.SheetPolicy{
		PageThreshold:     opts.pageThreshold,
		DocumentThreshold: opts.documentThreshold,
	}
	out, err := newWriter(f, output, policy, opts.title)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	engineOpts := reader.DefaultOptions()
	engineOpts.Image.Languages = opts.langs
	engineOpts.Image.DPI = opts.dpi
	engineOpts.Image.MinWidth = opts.minWidth

	c := gridripper.New(out, files...).
		Mode(mode).
		Columns(cols).
		Engine(reader.NewAutoWithOptions(engineOpts)).
		Title(opts.title).
		Logger(logger)
	if opts.preamble {
		c = c.Preamble()
	}

	logger.WithFields(logrus.Fields{
		"files":  len(files),
		"output": output,
		"format": f.String(),
		"mode":   mode.String(),
	}).Info("Starting export")

	err = watch(c, logger)
	outcome := c.Outcome()
	if outcome == gridripper.Clean {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("%d of %d files could not be exported", len(c.Errors()), len(files))
	}
	return &exitError{code: outcome.ExitCode(), err: err}
}

// watch runs c on its own goroutine, reporting its status until it ends.
// An interrupt aborts the run.
func watch(c *gridripper.Controller, logger logrus.FieldLogger) error {
	done := make(chan error, 1)
	go func() {
		done <- c.Run()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			return err
		case <-interrupt:
			logger.Warn("Interrupted, aborting export")
			c.Abort()
		case <-ticker.C:
			s := c.Status()
			logger.WithFields(logrus.Fields{
				"file":     s.File,
				"progress": s.Progress,
				"rows":     c.LastRowID(),
			}).Debug(s.Message())
		}
	}
}
