// Package menu builds the menu screens shown in menu states and moves focus
// through them from per-frame input.
package menu

import (
	"fmt"
	"strings"

	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/application/level"
	"github.com/younwookim/gardengun/internal/application/state"
)

// Title is shown at the top of the main menu
const Title = "Gardening Gun"

// Action is what confirming a menu item does
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionExit
	ActionResume
	ActionRetry
	ActionLevelSelect
	ActionMainMenu
	ActionPlayLevel
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionExit:
		return "Exit"
	case ActionResume:
		return "Resume"
	case ActionRetry:
		return "Retry"
	case ActionLevelSelect:
		return "LevelSelect"
	case ActionMainMenu:
		return "MainMenu"
	case ActionPlayLevel:
		return "PlayLevel"
	default:
		return "Unknown"
	}
}

// Item is one selectable line
type Item struct {
	Label   string
	Action  Action
	Level   int // index into the level list for ActionPlayLevel
	Enabled bool
	// Marked flags the level that was just completed
	Marked bool
}

// Menu is a titled list of items with one focused
type Menu struct {
	Title string
	Items []Item
	Focus int
}

func item(label string, action Action) Item {
	return Item{Label: label, Action: action, Enabled: true}
}

// Build returns the menu for a menu state. ok is false for states without one.
func Build(s state.AppState, progress *level.Progress) (m Menu, ok bool) {
	switch s {
	case state.MainMenu:
		return Menu{Title: Title, Items: []Item{
			item("Start", ActionStart),
			item("Exit", ActionExit),
		}}, true
	case state.PauseMenu:
		return Menu{Title: "Paused", Items: []Item{
			item("Resume", ActionResume),
			item("Retry", ActionRetry),
			item("Level select", ActionLevelSelect),
			item("Main menu", ActionMainMenu),
		}}, true
	case state.GameOver:
		return Menu{Title: "Game Over", Items: []Item{
			item("Retry", ActionRetry),
			item("Level select", ActionLevelSelect),
			item("Main menu", ActionMainMenu),
		}}, true
	case state.LevelSelectMenu:
		return levelSelect(progress), true
	default:
		return Menu{}, false
	}
}

// levelSelect lists every level, locked ones disabled. Focus lands on the
// level after the one just completed, or the first level.
func levelSelect(progress *level.Progress) Menu {
	m := Menu{Title: "Select level"}
	levels, err := progress.Levels()
	if err != nil {
		m.Items = append(m.Items, Item{Label: "Loading..."})
	}
	for i, l := range levels {
		marked := progress.JustCompleted != "" && l.Filename == progress.JustCompleted
		m.Items = append(m.Items, Item{
			Label:   LevelLabel(i, l.Filename),
			Action:  ActionPlayLevel,
			Level:   i,
			Enabled: progress.IsUnlocked(i),
			Marked:  marked,
		})
		if marked && progress.IsUnlocked(i+1) && i+1 < len(levels) {
			m.Focus = i + 1
		}
	}
	m.Items = append(m.Items, item("Main menu", ActionMainMenu))
	if !m.Items[m.Focus].Enabled {
		m.Focus = m.next(m.Focus, 1)
	}
	return m
}

// LevelLabel names a level for display: its number and file stem
func LevelLabel(i int, filename string) string {
	stem := strings.TrimSuffix(filename, ".yaml")
	return fmt.Sprintf("%d. %s", i+1, stem)
}

// Focused returns the focused item
func (m *Menu) Focused() (Item, bool) {
	if m.Focus < 0 || m.Focus >= len(m.Items) {
		return Item{}, false
	}
	return m.Items[m.Focus], true
}

// Navigate moves the focus with Up/Down, wrapping and skipping disabled
// items, and returns the focused item when Confirm is pressed
func (m *Menu) Navigate(f input.Frame) (Item, bool) {
	if len(m.Items) == 0 {
		return Item{}, false
	}
	switch {
	case f.Up:
		m.Focus = m.next(m.Focus, -1)
	case f.Down:
		m.Focus = m.next(m.Focus, 1)
	}
	if !f.Confirm {
		return Item{}, false
	}
	it, ok := m.Focused()
	if !ok || !it.Enabled {
		return Item{}, false
	}
	return it, true
}

// next returns the first enabled item from step away, or from if none is
func (m *Menu) next(from, step int) int {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((from+step*i)%n + n) % n
		if m.Items[j].Enabled {
			return j
		}
	}
	return from
}
