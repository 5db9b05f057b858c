package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	out := ansi.Strip(Box("Sleep timer", "> 30", "Enter: start, Esc: cancel", 40))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7) // border, title, blank, content, blank, footer, border
	for _, l := range lines {
		assert.Equal(t, 40, ansi.StringWidth(l))
	}
	assert.Contains(t, out, "Sleep timer")
	assert.Contains(t, out, "> 30")
}

func TestBox_AutoWidth(t *testing.T) {
	out := Box("", "abc", "", 0)
	assert.Equal(t, 3, strings.Count(out, "\n")+1)
	assert.Equal(t, 7, ansi.StringWidth(strings.Split(out, "\n")[1])) // │ abc │
}

func TestCompose_CentersOverBase(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 10)+"\n", 4) + strings.Repeat(".", 10)
	box := "ab\ncd"

	out := strings.Split(Compose(base, box, 10, 5), "\n")
	require.Len(t, out, 5)
	assert.Equal(t, "..........", out[0])
	assert.Equal(t, "....ab....", out[1])
	assert.Equal(t, "....cd....", out[2])
	assert.Equal(t, "..........", out[3])
}

func TestCompose_PadsShortBase(t *testing.T) {
	out := strings.Split(Compose("x", "ab", 6, 3), "\n")
	require.Len(t, out, 3)
	assert.Equal(t, "  ab  ", out[1])
}

func TestSplice_WideRuneAtCut(t *testing.T) {
	// "指" occupies columns 1-2; cutting at column 2 must not shift the overlay.
	got := splice("a指bcdef", "XY", 2, 2, 8)
	assert.Equal(t, 8, ansi.StringWidth(got))
	assert.Equal(t, "a XYcdef", got)
}
