package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// installed wraps the handler so it can live in an atomic.Pointer.
type installed struct {
	h ErrorHandler
}

var (
	current atomic.Pointer[installed]

	// fallback receives reports while no handler is installed.
	fallback ErrorHandler = &LogHandler{}
)

// Handler returns the process-wide error handler. It is a LogHandler until
// SetHandler installs another.
func Handler() ErrorHandler {
	if in := current.Load(); in != nil {
		return in.h
	}
	return fallback
}

// SetHandler installs h as the process-wide error handler and returns the
// one it replaces. Pass nil to go back to the LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	var next *installed
	if h != nil {
		next = &installed{h: h}
	}
	if prev := current.Swap(next); prev != nil {
		return prev.h
	}
	return fallback
}

// Report stamps err with the current time if it has none and hands it to
// the handler.
func Report(err *ScopeError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandleError(err)
}

// ReportPanic stamps err with the current time if it has none and hands it
// to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandlePanic(err)
}

// ReportAndRepanic reports r, a value already taken from recover, and
// panics with it again.
func ReportAndRepanic(op string, r any) {
	ReportPanic(newPanicError(op, r))
	panic(r)
}

// RecoverError turns a panic into an error. Defer it in a function with a
// named error result:
//
//	func run() (err error) {
//	    defer errors.RecoverError("cli.run", &err)
//	    ...
//	}
//
// The panic is reported and *errp is set to the resulting *PanicError.
func RecoverError(op string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	pe := newPanicError(op, r)
	ReportPanic(pe)
	if errp != nil {
		*errp = pe
	}
}

func newPanicError(op string, r any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

func stamp(ts *time.Time) {
	if ts.IsZero() {
		*ts = time.Now()
	}
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame, skipping CaptureStack itself.
func CaptureStack() string {
	pcs := make([]uintptr, 32)
	pcs = pcs[:runtime.Callers(2, pcs)]
	if len(pcs) == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}
