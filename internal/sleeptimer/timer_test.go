package sleeptimer

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu      sync.Mutex
	playing bool
	pauses  int
}

func (f *fakePlayer) IsPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func (f *fakePlayer) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	f.pauses++
}

func (f *fakePlayer) Pauses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pauses
}

func drain(ch <-chan State) []State {
	var out []State
	for {
		select {
		case s := <-ch:
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestStart_NonPositiveIsIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tm := New(&fakePlayer{}, nil)
		defer tm.Close()

		tm.Start(0)
		tm.Start(-5)

		assert.Equal(t, State{}, tm.State())
		assert.Empty(t, drain(tm.Updates()))
	})
}

func TestStart_ExpiryPausesPlayback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := &fakePlayer{playing: true}
		tm := New(p, nil)
		defer tm.Close()

		tm.Start(1)
		assert.Equal(t, State{Running: true, Remaining: 60}, tm.State())

		time.Sleep(59 * time.Second)
		synctest.Wait()
		assert.Equal(t, State{Running: true, Remaining: 1}, tm.State())
		assert.True(t, p.IsPlaying())

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, State{}, tm.State())
		assert.False(t, p.IsPlaying())
		assert.Equal(t, 1, p.Pauses())
	})
}

func TestStart_ExpiryWhilePausedDoesNotPause(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := &fakePlayer{}
		tm := New(p, nil)
		defer tm.Close()

		tm.Start(1)
		time.Sleep(time.Minute)
		synctest.Wait()

		assert.Equal(t, State{}, tm.State())
		assert.Equal(t, 0, p.Pauses())
	})
}

func TestStart_PublishesEverySecond(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tm := New(&fakePlayer{}, nil)
		defer tm.Close()

		tm.Start(1)
		time.Sleep(3 * time.Second)
		synctest.Wait()

		got := drain(tm.Updates())
		require.Len(t, got, 4)
		for i, s := range got {
			assert.Equal(t, State{Running: true, Remaining: 60 - i}, s)
		}
	})
}

func TestStart_ReplacesRunningCountdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := &fakePlayer{playing: true}
		tm := New(p, nil)
		defer tm.Close()

		tm.Start(2)
		time.Sleep(30 * time.Second)
		synctest.Wait()

		tm.Start(1)
		assert.Equal(t, State{Running: true, Remaining: 60}, tm.State())

		time.Sleep(59 * time.Second)
		synctest.Wait()
		assert.Equal(t, 1, tm.State().Remaining)

		time.Sleep(2 * time.Minute)
		synctest.Wait()
		assert.Equal(t, State{}, tm.State())
		assert.Equal(t, 1, p.Pauses())
	})
}

func TestCancel_NotRunningIsNoop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tm := New(&fakePlayer{}, nil)
		defer tm.Close()

		tm.Cancel()
		tm.Cancel()

		assert.Equal(t, State{}, tm.State())
		assert.Empty(t, drain(tm.Updates()))
	})
}

func TestCancel_StopsCountdown(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		p := &fakePlayer{playing: true}
		tm := New(p, nil)
		defer tm.Close()

		tm.Start(1)
		time.Sleep(10 * time.Second)
		synctest.Wait()

		tm.Cancel()
		assert.Equal(t, State{}, tm.State())
		drain(tm.Updates())

		time.Sleep(5 * time.Minute)
		synctest.Wait()
		assert.Empty(t, drain(tm.Updates()))
		assert.Equal(t, 0, p.Pauses())
		assert.True(t, p.IsPlaying())
	})
}

func TestStartFromInput(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tm := New(&fakePlayer{}, nil)
		defer tm.Close()

		for _, in := range []string{"", "abc", "0", "-2", "1.5"} {
			assert.False(t, tm.StartFromInput(in), "input %q", in)
			assert.Equal(t, State{}, tm.State(), "input %q", in)
		}

		assert.True(t, tm.StartFromInput(" 5 "))
		assert.Equal(t, State{Running: true, Remaining: 300}, tm.State())
	})
}

func TestClose_RejectsLaterStarts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		tm := New(&fakePlayer{}, nil)
		tm.Start(3)
		tm.Close()

		assert.Equal(t, State{}, tm.State())
		tm.Start(1)
		assert.Equal(t, State{}, tm.State())
	})
}
