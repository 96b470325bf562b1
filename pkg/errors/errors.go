// Package errors provides structured error handling for the vscope runtime.
//
// Two failure categories exist. Contract violations (wrong-kind downcasts,
// spent one-shot callbacks, scheduling on a destroyed scope, re-entrant state
// access) panic with a *ContractError and are never recovered by the runtime.
// Stale work, meaning a scheduled unit whose component is already gone, is not
// an error at all and is silently skipped.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindContract indicates a violated API contract.
	KindContract
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindScheduler indicates a scheduler failure such as an exceeded flush budget.
	KindScheduler
	// KindConfig indicates an invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindPanic:
		return "panic"
	case KindScheduler:
		return "scheduler"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Sentinel causes. The contract ones are carried by ContractError.
var (
	ErrKindMismatch    = errors.New("unexpected component kind")
	ErrCallbackSpent   = errors.New("one-shot callback already invoked")
	ErrScopeDestroyed  = errors.New("scope used after destroy")
	ErrReentrantBorrow = errors.New("component state borrowed re-entrantly")
	ErrLinkCycle       = errors.New("node reference link would create a cycle")
	ErrFlushBudget     = errors.New("flush exceeded its unit budget")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// ScopeError represents a structured error in the runtime.
type ScopeError struct {
	// Op is the operation that failed (e.g., "scheduler.Flush").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Component names the component kind involved, if any.
	Component string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ScopeError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ScopeError) Unwrap() error {
	return e.Err
}

// ContractError is the panic value used for contract violations.
type ContractError struct {
	// Op is the operation that detected the violation (e.g., "scope.Downcast").
	Op string
	// Err is the sentinel cause.
	Err error
	// Detail adds context such as the kinds involved.
	Detail string
}

func (e *ContractError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// Violation panics with a ContractError. It never returns.
func Violation(op string, cause error, detail string) {
	panic(&ContractError{Op: op, Err: cause, Detail: detail})
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scheduler.update").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ScopeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
