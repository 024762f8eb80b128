package input

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"facekey/internal/action"
	"facekey/internal/logging"
)

// Executor owns the single input-injection handle of the process and applies
// actions to it under one lock, so actions from concurrent callers never
// interleave.
type Executor struct {
	mu         sync.Mutex
	open       Opener
	handle     Backend
	executions uint64
	log        zerolog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// NewExecutor creates an Executor. The handle is opened on first use.
func NewExecutor(open Opener, opts ...Option) *Executor {
	e := &Executor{
		open: open,
		log:  logging.GetLogger("input"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies a to the platform. It blocks until the lock is acquired
// and the injection has completed.
func (e *Executor) Execute(a action.Action) (err error) {
	if a == nil {
		return &ExecutionError{Err: errors.New("nil action")}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Stringer("action", a).Msg("Backend panicked")
			err = &ExecutionError{Action: a, Err: fmt.Errorf("backend panic: %v", r)}
		}
	}()

	if e.handle == nil {
		h, err := e.open()
		if err != nil {
			e.log.Warn().Err(err).Msg("Failed to open input backend")
			return &ExecutionError{Action: a, Err: errors.Wrap(err, "opening input backend")}
		}
		e.handle = h
		e.log.Debug().Msg("Input backend opened")
	}

	if err := apply(e.handle, a); err != nil {
		e.log.Warn().Err(err).Stringer("action", a).Msg("Injection failed")
		return &ExecutionError{Action: a, Err: err}
	}

	e.executions++
	e.log.Trace().Stringer("action", a).Msg("Action executed")
	return nil
}

// Executions returns the number of actions applied successfully.
func (e *Executor) Executions() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.executions
}

// Close releases the handle, if it was opened.
func (e *Executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handle == nil {
		return nil
	}
	err := e.handle.Close()
	e.handle = nil
	return err
}

func apply(b Backend, a action.Action) error {
	switch a := a.(type) {
	case action.Text:
		return b.Text(a.Text)
	case action.Key:
		return b.Key(a.Key, a.Direction)
	case action.Raw:
		return b.Raw(a.Code, a.Direction)
	case action.Button:
		return b.Button(a.Button, a.Direction)
	case action.MoveMouse:
		return b.MoveMouse(a.X, a.Y, a.Coordinate)
	case action.Scroll:
		return b.Scroll(a.Length, a.Axis)
	default:
		return errors.Errorf("unsupported action kind %s", a.Kind())
	}
}
