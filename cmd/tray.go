package main

import (
	"os"

	"facekey/internal/autostart"
	"facekey/internal/cli"
	"facekey/internal/config"
	"facekey/internal/logging"
	"facekey/internal/osutils"
	"facekey/internal/tray"
)

// newTray builds the tray menu: open data folder, start at login, quit.
func newTray(cfg *config.Config, onQuit func()) cli.TrayRunner {
	l := logging.GetLogger("tray")
	t := tray.New("facekey - "+cfg.Listen, onQuit)

	t.Add(&tray.MenuItem{
		Title: "Open data folder",
		Callback: func(*tray.MenuItem) {
			if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
				l.Error().Err(err).Msg("Failed to create data folder")
				return
			}
			if err := osutils.Open(cfg.DataDir); err != nil {
				l.Error().Err(err).Msg("Failed to open data folder")
			}
		},
	})

	t.Add(&tray.MenuItem{
		Title:     "Start at login",
		Checkable: true,
		Checked:   autostart.IsEnabled(),
		Callback: func(mi *tray.MenuItem) {
			toggle := autostart.Disable
			if mi.Checked {
				toggle = autostart.Enable
			}
			if err := toggle(); err != nil {
				l.Error().Err(err).Bool("enable", mi.Checked).Msg("Failed to change start at login")
				t.SetChecked(mi, !mi.Checked)
			}
		},
	})

	t.AddSeparator()
	t.Add(&tray.MenuItem{
		Title:    "Quit",
		Callback: func(*tray.MenuItem) { t.Stop() },
	})
	return t
}
