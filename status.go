package gridripper

import (
	"fmt"

	"github.com/michaelaaronlevy/grid-ripper/export"
)

// FileError reports an input file that could not be processed. Page is the
// 1-based page that failed, or 0 when the file could not be opened.
type FileError struct {
	Path string
	Page int
	Err  error
}

func (e *FileError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: page %d: %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Outcome summarizes how a run ended.
type Outcome int

const (
	// Clean means every file was exported.
	Clean Outcome = iota
	// CompletedWithErrors means the output exists but some files were
	// skipped, so it may be incomplete.
	CompletedWithErrors
	// Aborted means the run stopped on a fatal error and the output is not
	// usable.
	Aborted
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Clean:
		return "clean"
	case CompletedWithErrors:
		return "completed with errors"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case Clean:
		return 0
	case CompletedWithErrors:
		return 1
	default:
		return 2
	}
}

// Outcome returns the outcome implied by the writer's error status.
func (c *Controller) Outcome() Outcome {
	switch c.out.ErrorStatus() {
	case export.NoError:
		return Clean
	case export.Error:
		return CompletedWithErrors
	default:
		return Aborted
	}
}

// Progress returns how far the current file has got, in tenths of a
// percent: the number of pages started before the current one, times 1000,
// divided by the page count.
func (c *Controller) Progress() int {
	return progress(int(c.state.page.Load()), int(c.state.pageCount.Load()))
}

// ProgressText renders Progress as a percentage with one decimal, for
// example "37.5%.".
func (c *Controller) ProgressText() string {
	return progressText(c.Progress())
}

func progress(page, pages int) int {
	if pages <= 0 {
		return 0
	}
	if page < 0 {
		page = 0
	}
	return page * 1000 / pages
}

func progressText(permille int) string {
	return fmt.Sprintf("%d.%d%%.", permille/10, permille%10)
}

// Status is a snapshot of a run for display while it is in progress.
type Status struct {
	Run      export.RunStatus
	Error    export.ErrorStatus
	File     int // 1-based number of the file being processed
	Files    int
	Progress string
}

// Status returns a snapshot of the run. It may be called from any
// goroutine.
func (c *Controller) Status() Status {
	return Status{
		Run:      c.out.RunStatus(),
		Error:    c.out.ErrorStatus(),
		File:     int(c.state.file.Load()),
		Files:    len(c.files),
		Progress: c.ProgressText(),
	}
}

const (
	msgNotStarted         = "Not Started."
	msgRunningNoErrors    = "Running - No Errors."
	msgRunningWithErrors  = "Running - There are errors, which means the data output may be incomplete or corrupted."
	msgRunningFatal       = "Fatal Error - the export will stop and there will be no output."
	msgFinishedNoErrors   = "Finished Running - No Errors."
	msgFinishedWithErrors = "Finished Running - There are errors, which means the data output may be incomplete or corrupted."
	msgFinishedFatal      = "Fatal Error - the export has stopped and there will be no output."
	msgProcessingFile     = "Processing File: "
)

// Message describes the run and error status in one sentence.
func (s Status) Message() string {
	switch s.Run {
	case export.NotStarted:
		return msgNotStarted
	case export.Running:
		switch s.Error {
		case export.NoError:
			return msgRunningNoErrors
		case export.Error:
			return msgRunningWithErrors
		default:
			return msgRunningFatal
		}
	default:
		switch s.Error {
		case export.NoError:
			return msgFinishedNoErrors
		case export.Error:
			return msgFinishedWithErrors
		default:
			return msgFinishedFatal
		}
	}
}

// Detail names the file being processed and its progress. It is empty
// once the run is over.
func (s Status) Detail() string {
	switch s.Run {
	case export.NotStarted:
		return msgNotStarted
	case export.Running:
		if s.Files == 1 {
			return msgProcessingFile + s.Progress
		}
		return fmt.Sprintf("%s%d of %d - %s", msgProcessingFile, s.File, s.Files, s.Progress)
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if d := s.Detail(); d != "" && d != s.Message() {
		return s.Message() + " " + d
	}
	return s.Message()
}
