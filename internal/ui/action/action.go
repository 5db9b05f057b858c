// Package action carries results from UI components back to the app model.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a result produced by a component. ActionType names it in logs.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that produced it.
type Msg struct {
	Source string // e.g. "prompt"
	Action Action
}

var _ tea.Msg = Msg{}
