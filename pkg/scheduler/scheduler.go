package scheduler

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/vscope/pkg/errors"
)

// Scheduler queues component work and drains it on Flush.
type Scheduler struct {
	mu     sync.Mutex
	queues [numClasses]fifo
	ran    [numClasses]uint64

	running atomic.Bool
	nextID  atomic.Uint64

	maxUnits     int
	autoFlush    bool
	onNeedsFlush func()
	logger       *zap.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. Defaults to the package Logger().
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithMaxUnitsPerFlush bounds how many units a single Flush runs.
// Zero disables the bound. Work left over stays queued for the next Flush.
func WithMaxUnitsPerFlush(n int) Option {
	return func(s *Scheduler) {
		if n < 0 {
			n = 0
		}
		s.maxUnits = n
	}
}

// WithAutoFlush makes every Push and Dispatch call Flush immediately.
func WithAutoFlush(enabled bool) Option {
	return func(s *Scheduler) {
		s.autoFlush = enabled
	}
}

// WithOnNeedsFlush registers a hook called after work is queued, signalling
// the host that a Flush should be scheduled.
func WithOnNeedsFlush(fn func()) Option {
	return func(s *Scheduler) {
		s.onNeedsFlush = fn
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) log() *zap.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// NextComponentID returns a fresh component identity.
func (s *Scheduler) NextComponentID() ComponentID {
	return ComponentID(s.nextID.Add(1))
}

// Push queues unit in class on behalf of component id.
// Pushing into an unknown class panics.
func (s *Scheduler) Push(id ComponentID, class QueueClass, unit Runnable) {
	if !class.Valid() {
		panic(fmt.Sprintf("scheduler: invalid queue class %d", class))
	}
	if unit == nil {
		return
	}
	s.mu.Lock()
	s.queues[class].push(entry{id: id, unit: unit})
	s.mu.Unlock()
	s.signal()
}

// Dispatch queues fn on the main queue.
// Returns false if fn is nil.
func (s *Scheduler) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}
	s.Push(0, ClassMain, RunnableFunc(fn))
	return true
}

func (s *Scheduler) signal() {
	if s.onNeedsFlush != nil {
		s.onNeedsFlush()
	}
	if s.autoFlush {
		s.Flush()
	}
}

// Pending returns the number of queued units across all classes.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for i := range s.queues {
		total += s.queues[i].len()
	}
	return total
}

// PendingClass returns the number of queued units in class.
func (s *Scheduler) PendingClass(class QueueClass) int {
	if !class.Valid() {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queues[class].len()
}

// Ran returns how many units of class have run since the Scheduler was created.
func (s *Scheduler) Ran(class QueueClass) uint64 {
	if !class.Valid() {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ran[class]
}

// IsRunning reports whether a Flush is in progress.
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

// next pops the highest-priority queued unit.
func (s *Scheduler) next() (QueueClass, entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, class := range drainOrder {
		if e, ok := s.queues[class].pop(); ok {
			s.ran[class]++
			return class, e, true
		}
	}
	return 0, entry{}, false
}

// Flush runs queued units until none remain or the unit budget is spent,
// and returns how many ran. Units queued while flushing run in the same pass.
//
// At most one unit runs at a time in the whole process. A Flush called while
// a unit is running, on this or any other Scheduler, returns 0 immediately;
// the Flush that owns the running unit drains the work once it is free.
//
// A panicking unit is reported to the errors handler and the panic is
// re-raised after the Scheduler is released, so a later Flush can resume.
func (s *Scheduler) Flush() int {
	total := 0
loop:
	for {
		ran, res := s.drain()
		total += ran
		switch res {
		case drainNested:
			return total
		case drainBlocked:
			if active.Load() {
				return total
			}
		case drainBudget:
			break loop
		case drainEmpty:
			// A Push from another goroutine may have lost the race for
			// running just before it was released.
			if s.Pending() == 0 {
				break loop
			}
		}
	}
	flushDeferred()
	return total
}

type drainResult int

const (
	drainEmpty drainResult = iota
	drainBudget
	drainNested
	drainBlocked
)

// drain claims this Scheduler and the process-wide active flag, then runs
// units until the queues are empty or the budget is spent.
func (s *Scheduler) drain() (int, drainResult) {
	if !s.running.CompareAndSwap(false, true) {
		return 0, drainNested
	}
	if !active.CompareAndSwap(false, true) {
		s.running.Store(false)
		deferFlush(s)
		s.log().Debug("flush deferred while another unit runs")
		return 0, drainBlocked
	}
	defer func() {
		active.Store(false)
		s.running.Store(false)
	}()

	start := time.Now()
	ran := 0
	res := drainEmpty
	for {
		if s.maxUnits > 0 && ran >= s.maxUnits {
			if left := s.Pending(); left > 0 {
				s.log().Warn("flush budget exhausted",
					zap.Int("ran", ran),
					zap.Int("pending", left))
				errors.Report(&errors.ScopeError{
					Op:   "scheduler.Flush",
					Kind: errors.KindScheduler,
					Err:  fmt.Errorf("%w: ran %d, %d pending", errors.ErrFlushBudget, ran, left),
				})
				res = drainBudget
			}
			break
		}
		class, e, ok := s.next()
		if !ok {
			break
		}
		s.run(class, e)
		ran++
	}
	if ran > 0 {
		s.log().Debug("flush complete",
			zap.Int("units", ran),
			zap.Duration("elapsed", time.Since(start)))
	}
	return ran, res
}

func (s *Scheduler) run(class QueueClass, e entry) {
	defer func() {
		if r := recover(); r != nil {
			s.log().Error("unit panicked",
				zap.Stringer("class", class),
				zap.Uint64("component", uint64(e.id)),
				zap.Any("panic", r))
			errors.ReportAndRepanic("scheduler."+class.String(), r)
		}
	}()
	e.unit.Run()
}

var (
	// active is held while any Scheduler runs a unit.
	active atomic.Bool

	deferredMu sync.Mutex
	deferred   []*Scheduler
)

// deferFlush records that s was asked to flush while another unit ran.
func deferFlush(s *Scheduler) {
	deferredMu.Lock()
	defer deferredMu.Unlock()
	if !slices.Contains(deferred, s) {
		deferred = append(deferred, s)
	}
}

// flushDeferred flushes every Scheduler whose Flush was refused while a unit
// ran. It leaves the list alone while another Flush holds active; that Flush
// drains it when it finishes.
func flushDeferred() {
	for !active.Load() {
		deferredMu.Lock()
		pending := deferred
		deferred = nil
		deferredMu.Unlock()
		if len(pending) == 0 {
			return
		}
		for _, s := range pending {
			s.Flush()
		}
	}
}

var (
	defaultMu        sync.RWMutex
	defaultScheduler *Scheduler
)

// Default returns the process-wide Scheduler, creating an auto-flushing one
// on first use.
func Default() *Scheduler {
	defaultMu.RLock()
	s := defaultScheduler
	defaultMu.RUnlock()
	if s != nil {
		return s
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultScheduler == nil {
		defaultScheduler = New(WithAutoFlush(true))
	}
	return defaultScheduler
}

// SetDefault replaces the process-wide Scheduler and returns the previous one.
// Pass nil to have Default create a fresh one on next use.
func SetDefault(s *Scheduler) *Scheduler {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultScheduler
	defaultScheduler = s
	return prev
}
