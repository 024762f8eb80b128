// Package dispatch routes the host commands to the input executor and the
// document stores.
package dispatch

import (
	"fmt"

	"github.com/rs/zerolog"

	"facekey/internal/action"
	"facekey/internal/logging"
	"facekey/internal/protocol"
)

// Executor applies a decoded action. *input.Executor implements it.
type Executor interface {
	Execute(a action.Action) error
}

// Document is a named text document. *store.Store implements it.
type Document interface {
	Get() string
	Set(data string) error
}

// Dispatcher holds references only; every call is forwarded synchronously.
type Dispatcher struct {
	exec     Executor
	settings Document
	profiles Document
	log      zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger overrides the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// New creates a Dispatcher.
func New(exec Executor, settings, profiles Document, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		exec:     exec,
		settings: settings,
		profiles: profiles,
		log:      logging.GetLogger("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ExecuteAction decodes payload and injects it. A malformed payload returns
// an *action.DecodeError without touching the executor.
func (d *Dispatcher) ExecuteAction(payload string) error {
	a, err := action.Decode(payload)
	if err != nil {
		return err
	}
	return d.exec.Execute(a)
}

func (d *Dispatcher) GetSettings() string {
	return d.settings.Get()
}

func (d *Dispatcher) SetSettings(data string) error {
	return d.settings.Set(data)
}

func (d *Dispatcher) GetProfiles() string {
	return d.profiles.Get()
}

func (d *Dispatcher) SetProfiles(data string) error {
	return d.profiles.Set(data)
}

// Dispatch runs req and reports failures as text in the response.
func (d *Dispatcher) Dispatch(req protocol.Request) protocol.Response {
	resp := protocol.Response{ID: req.ID}

	cmd, ok := protocol.ParseCommand(string(req.Command))
	if !ok {
		resp.Error = fmt.Sprintf("unknown command %q", req.Command)
		d.log.Warn().Str("command", string(req.Command)).Msg("Unknown command")
		return resp
	}

	var err error
	switch cmd {
	case protocol.CmdExecuteAction:
		err = d.ExecuteAction(req.Payload)
	case protocol.CmdGetSettings:
		resp.Result = d.GetSettings()
	case protocol.CmdSetSettings:
		err = d.SetSettings(req.Payload)
	case protocol.CmdGetProfiles:
		resp.Result = d.GetProfiles()
	case protocol.CmdSetProfiles:
		err = d.SetProfiles(req.Payload)
	}

	if err != nil {
		resp.Error = err.Error()
		d.log.Debug().Err(err).Str("command", string(cmd)).Msg("Command failed")
	}
	return resp
}
