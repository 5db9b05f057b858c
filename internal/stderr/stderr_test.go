//go:build !windows

package stderr

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_DeliversLines(t *testing.T) {
	c, err := Start()
	require.NoError(t, err)
	defer c.Stop()

	_, err = os.Stderr.WriteString("ALSA lib pcm.c: underrun occurred\n\n  \n")
	require.NoError(t, err)

	select {
	case line := <-c.Lines():
		assert.Equal(t, "ALSA lib pcm.c: underrun occurred", line)
	case <-time.After(2 * time.Second):
		t.Fatal("no line captured")
	}
}

func TestCapture_StopClosesLines(t *testing.T) {
	c, err := Start()
	require.NoError(t, err)

	c.Stop()
	c.Stop()

	_, ok := <-c.Lines()
	assert.False(t, ok)
}
