package prompt

import (
	"github.com/llehouerou/audiobook/internal/ui/action"
)

// Result contains the prompt result.
type Result struct {
	Kind     Kind
	Text     string
	Canceled bool // True if user pressed Escape
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "prompt.result" }

// ActionMsg creates an action.Msg for a prompt action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "prompt", Action: a}
}
