package gridripper

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/michaelaaronlevy/grid-ripper/model"
	"github.com/michaelaaronlevy/grid-ripper/reader"
	"github.com/michaelaaronlevy/grid-ripper/text"
)

// DefaultTitle is the first cell of the preamble.
const DefaultTitle = "GridRipper - positioned text export"

// RunOptions holds configuration for a run.
type RunOptions struct {
	mode     text.Mode
	columns  model.ColumnSet
	engine   reader.Engine
	preamble bool
	title    string
	logger   logrus.FieldLogger
	now      func() time.Time
}

// defaultOptions returns the default run options.
func defaultOptions() RunOptions {
	return RunOptions{
		mode:    text.Phrases,
		columns: model.DefaultColumns,
		engine:  nil, // nil means reader.NewAuto()
		title:   DefaultTitle,
		logger:  nil, // nil means logrus.StandardLogger()
		now:     time.Now,
	}
}

// clone creates a copy of RunOptions. Every field is a value or an
// immutable collaborator, so a shallow copy suffices.
func (o RunOptions) clone() RunOptions {
	return o
}

func (o RunOptions) log() logrus.FieldLogger {
	if o.logger == nil {
		return logrus.StandardLogger()
	}
	return o.logger
}

func (o RunOptions) reader() reader.Engine {
	if o.engine == nil {
		return reader.NewAuto()
	}
	return o.engine
}
