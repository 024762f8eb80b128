// Package tray provides the system tray menu using getlantern/systray.
package tray

import (
	"github.com/getlantern/systray"
)

// MenuItem is one entry of the tray menu. Checkable items toggle their own
// check mark before the callback runs.
type MenuItem struct {
	Title     string
	Tooltip   string
	Checkable bool
	Checked   bool
	Callback  func(item *MenuItem)
	item      *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	tooltip string
	items   []*MenuItem
	onExit  func()
	quitCh  chan struct{}
}

// New creates a new system tray. onExit runs after the menu is torn down.
func New(tooltip string, onExit func()) *Tray {
	return &Tray{
		tooltip: tooltip,
		onExit:  onExit,
		quitCh:  make(chan struct{}),
	}
}

// Add appends an item to the menu. Items must be added before Run.
func (t *Tray) Add(item *MenuItem) {
	t.items = append(t.items, item)
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.items = append(t.items, nil) // nil indicates separator
}

// SetChecked updates the check mark of a checkable item.
func (t *Tray) SetChecked(mi *MenuItem, checked bool) {
	mi.Checked = checked
	if mi.item == nil {
		return
	}
	if checked {
		mi.item.Check()
	} else {
		mi.item.Uncheck()
	}
}

// Run starts the tray event loop. It blocks and must be called from the
// main goroutine.
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() {
		close(t.quitCh)
		if t.onExit != nil {
			t.onExit()
		}
	})
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	systray.SetTitle("facekey")
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(icon())

	for _, mi := range t.items {
		if mi == nil {
			systray.AddSeparator()
			continue
		}
		mi.item = systray.AddMenuItem(mi.Title, mi.Tooltip)
		if mi.Checkable && mi.Checked {
			mi.item.Check()
		}
		if mi.Callback != nil {
			go t.watch(mi)
		}
	}
}

// watch forwards clicks on mi until the tray quits.
func (t *Tray) watch(mi *MenuItem) {
	for {
		select {
		case <-mi.item.ClickedCh:
			if mi.Checkable {
				t.SetChecked(mi, !mi.Checked)
			}
			mi.Callback(mi)
		case <-t.quitCh:
			return
		}
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}
