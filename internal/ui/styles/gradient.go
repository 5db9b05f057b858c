package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for ANSI palette colors, which have no fixed RGB value.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient colors text from one end color to the other, blending in HCL
// space so the midpoint does not turn muddy.
type Gradient struct {
	from, to colorful.Color
	bold     bool
}

// NewGradient returns a gradient between two hex colors.
func NewGradient(from, to lipgloss.Color) Gradient {
	return Gradient{from: toColorful(from), to: toColorful(to)}
}

// Bold returns a copy that renders bold text.
func (g Gradient) Bold() Gradient {
	g.bold = true
	return g
}

// Render spreads the gradient over the grapheme clusters of text.
func (g Gradient) Render(text string) string {
	clusters := graphemes(text)
	return g.render(clusters, len(clusters))
}

// RenderSpan colors text as if it were the first part of a span clusters
// long. A growing progress bar keeps the color under each cell.
func (g Gradient) RenderSpan(text string, span int) string {
	clusters := graphemes(text)
	return g.render(clusters, max(span, len(clusters)))
}

// At returns the hex color at position t in [0, 1].
func (g Gradient) At(t float64) string {
	return g.from.BlendHcl(g.to, min(max(t, 0), 1)).Clamped().Hex()
}

func (g Gradient) render(clusters []string, span int) string {
	if len(clusters) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range clusters {
		t := 0.0
		if span > 1 {
			t = float64(i) / float64(span-1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(g.At(t))).Bold(g.bold)
		b.WriteString(style.Render(c))
	}
	return b.String()
}

func graphemes(text string) []string {
	var out []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}
