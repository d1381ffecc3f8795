package app

import (
	"fmt"
	"strings"
)

// Action names a user-visible command.
type Action string

const (
	// ActionClearAll removes every mark. Shown as "Clear All Mouse Marks".
	ActionClearAll Action = "clear-all"
	// ActionClearLast removes the most recent mark, or the strokes in
	// progress. Shown as "Clear Last Mouse Mark".
	ActionClearLast Action = "clear-last"
	// ActionQuit stops the application.
	ActionQuit Action = "quit"
)

// Actions lists every action in menu order.
var Actions = []Action{ActionClearAll, ActionClearLast, ActionQuit}

// Title returns the menu label for the action.
func (a Action) Title() string {
	switch a {
	case ActionClearAll:
		return "Clear All Mouse Marks"
	case ActionClearLast:
		return "Clear Last Mouse Mark"
	case ActionQuit:
		return "Quit"
	default:
		return string(a)
	}
}

// ParseAction resolves an action name.
func ParseAction(name string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Actions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
