// Package ui holds pieces shared by the TUI components.
package ui

// Base stores the size a component was laid out with. Embed it to satisfy
// the SetSize part of popup.Popup.
type Base struct {
	width, height int
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}
