package input

import (
	"github.com/rs/zerolog"

	"facekey/internal/action"
)

// DryRun logs every injection instead of performing it.
type DryRun struct {
	log zerolog.Logger
}

// NewDryRun returns a DryRun backend writing to l.
func NewDryRun(l zerolog.Logger) *DryRun {
	return &DryRun{log: l}
}

func (d *DryRun) Text(text string) error {
	d.log.Info().Str("op", "text").Str("text", text).Msg("Dry run")
	return nil
}

func (d *DryRun) Key(key action.KeyCode, dir action.Direction) error {
	d.log.Info().Str("op", "key").Stringer("key", key).Stringer("direction", dir).Msg("Dry run")
	return nil
}

func (d *DryRun) Raw(code uint16, dir action.Direction) error {
	d.log.Info().Str("op", "raw").Uint16("code", code).Stringer("direction", dir).Msg("Dry run")
	return nil
}

func (d *DryRun) Button(button action.MouseButton, dir action.Direction) error {
	d.log.Info().Str("op", "button").Stringer("button", button).Stringer("direction", dir).Msg("Dry run")
	return nil
}

func (d *DryRun) MoveMouse(x, y int32, coord action.Coordinate) error {
	d.log.Info().Str("op", "move").Int32("x", x).Int32("y", y).Stringer("coordinate", coord).Msg("Dry run")
	return nil
}

func (d *DryRun) Scroll(length int32, axis action.Axis) error {
	d.log.Info().Str("op", "scroll").Int32("length", length).Stringer("axis", axis).Msg("Dry run")
	return nil
}

func (d *DryRun) Close() error {
	return nil
}
