// Package handler chains the key handlers of the app model.
package handler

import tea "github.com/charmbracelet/bubbletea"

// Result is the outcome of one handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled passes the key to the next handler.
var NotHandled = Result{}

// HandledNoCmd stops the chain without a command.
var HandledNoCmd = Result{Handled: true}

// Handled stops the chain with cmd.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// Handler tries to handle a key.
type Handler func(key string) Result

// Chain offers key to each handler in order and returns the first result
// that handled it.
func Chain(key string, handlers ...Handler) Result {
	for _, h := range handlers {
		if r := h(key); r.Handled {
			return r
		}
	}
	return NotHandled
}
