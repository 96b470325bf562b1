package cmd

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/go-drift/vscope/internal/config"
	"github.com/go-drift/vscope/internal/demo"
	"github.com/go-drift/vscope/pkg/callback"
	"github.com/go-drift/vscope/pkg/errors"
	"github.com/go-drift/vscope/pkg/memdom"
	"github.com/go-drift/vscope/pkg/scheduler"
	"github.com/go-drift/vscope/pkg/scope"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Mount the demo counter and print each step",
		Long: `Mount a counter with a nested badge on an in-memory DOM, feed it
input through its callbacks and print the DOM after every flush.

Logging and scheduler limits follow the project configuration.`,
		Usage: "vscope run [dir]",
		Run:   runDemo,
	})
}

// session is a mounted component tree and the scheduler driving it.
type session struct {
	sched *scheduler.Scheduler
	root  *memdom.Element
	out   io.Writer
}

func (s *session) step(name string) {
	ran := s.sched.Flush()
	fmt.Fprintf(s.out, "%-10s units=%-2d %s\n", name, ran, s.root.InnerHTML())
}

func runDemo(args []string, out io.Writer) error {
	dir, err := projectDir(args)
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	restore := installLogger(logger)
	defer restore()

	sess := &session{
		sched: scheduler.New(cfg.SchedulerOptions(logger.Named("scheduler"))...),
		root:  memdom.NewElement("body"),
		out:   out,
	}
	return sess.play(func(sess *session) error {
		return playCounter(sess, cfg.AppName, logger)
	})
}

// play runs fn, turning a panicking component into an error.
func (s *session) play(fn func(*session) error) (err error) {
	defer errors.RecoverError("vscope.run", &err)
	return fn(s)
}

func playCounter(sess *session, label string, logger *zap.Logger) error {
	s := scope.NewWithScheduler(demo.CounterKind, nil, sess.sched)
	s.MountInPlace(sess.root, nil, nil, demo.CounterProps{
		Label: label,
		OnChange: callback.New(func(n int) {
			logger.Info("count changed", zap.Int("count", n))
		}),
	})
	sess.step("mount")

	c, ok := s.Component()
	if !ok {
		return fmt.Errorf("counter did not mount")
	}
	controls := c.(*demo.Counter).Controls()

	controls.Increment.Emit(struct{}{})
	sess.step("increment")
	controls.Bump.Emit(3)
	sess.step("bump 3")
	controls.Decrement.Emit(struct{}{})
	sess.step("decrement")
	controls.Reset.Emit(struct{}{})
	sess.step("reset")

	s.Destroy()
	sess.step("destroy")
	return nil
}

// installLogger routes package logging to logger and returns a function
// restoring the previous loggers.
func installLogger(logger *zap.Logger) func() {
	prevScope, prevSched, prevErrors := scope.Logger(), scheduler.Logger(), errors.Logger()
	scope.SetLogger(logger.Named("scope"))
	scheduler.SetLogger(logger.Named("scheduler"))
	errors.SetLogger(logger.Named("errors"))
	return func() {
		scope.SetLogger(prevScope)
		scheduler.SetLogger(prevSched)
		errors.SetLogger(prevErrors)
	}
}
