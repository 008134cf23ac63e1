package export

import (
	"sync"
	"sync/atomic"
)

// RunStatus is the lifecycle state of a writer. It only moves forward.
type RunStatus int32

const (
	NotStarted RunStatus = iota
	Running
	Done
)

// String returns a human-readable representation of the run status
func (s RunStatus) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// ErrorStatus is the error severity of a run. It only escalates.
type ErrorStatus int32

const (
	NoError ErrorStatus = iota
	// Error means at least one input document could not be processed.
	Error
	// Crash means the output can no longer be written. Every write is a
	// no-op from then on.
	Crash
)

// String returns a human-readable representation of the error status
func (s ErrorStatus) String() string {
	switch s {
	case NoError:
		return "no error"
	case Error:
		return "error"
	case Crash:
		return "crash"
	default:
		return "unknown"
	}
}

// Status holds the run and error status of a writer. Both values may be read
// from any goroutine while the writer is driven from another. Writers embed
// Status to satisfy the status half of [Writer].
type Status struct {
	run atomic.Int32
	err atomic.Int32

	mu    sync.Mutex
	cause error
}

// RunStatus returns the current run status.
func (s *Status) RunStatus() RunStatus {
	return RunStatus(s.run.Load())
}

// ErrorStatus returns the current error status.
func (s *Status) ErrorStatus() ErrorStatus {
	return ErrorStatus(s.err.Load())
}

// Crashed reports whether a fatal error has been declared.
func (s *Status) Crashed() bool {
	return s.ErrorStatus() == Crash
}

// DeclareError escalates NoError to Error. It has no effect on a crashed
// writer.
func (s *Status) DeclareError() {
	s.err.CompareAndSwap(int32(NoError), int32(Error))
}

// DeclareFatalError forces the Crash state.
func (s *Status) DeclareFatalError() {
	s.err.Store(int32(Crash))
}

// Fail records err as the cause of the crash, unless a cause is already
// known, and declares a fatal error.
func (s *Status) Fail(err error) {
	s.mu.Lock()
	if s.cause == nil {
		s.cause = err
	}
	s.mu.Unlock()
	s.DeclareFatalError()
}

// Cause returns the first error passed to Fail, or nil.
func (s *Status) Cause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cause
}

// Start moves the writer from NotStarted to Running.
func (s *Status) Start() {
	s.run.CompareAndSwap(int32(NotStarted), int32(Running))
}

// Finish moves the writer to Done.
func (s *Status) Finish() {
	s.run.Store(int32(Done))
}
