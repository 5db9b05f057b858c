package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/audiobook/internal/engine"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Playing: true, Lifecycle: engine.Ready})
		sub.sendPosition(PositionChange{Position: 30 * time.Second, Duration: time.Minute})
		sub.sendMedia(MediaChange{Media: book})
		sub.sendError(ErrorEvent{Operation: "load", Err: errors.New("x")})

		if e := <-sub.StateChanged; !e.Playing || e.Lifecycle != engine.Ready {
			t.Errorf("StateChanged = %+v, want playing and Ready", e)
		}
		if p := <-sub.PositionChanged; p.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", p.Position)
		}
		if m := <-sub.MediaChanged; m.Media != book {
			t.Errorf("MediaChanged.Media = %v, want %v", m.Media, book)
		}
		if e := <-sub.Error; e.Operation != "load" {
			t.Errorf("Error.Operation = %q, want load", e.Operation)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendPosition(PositionChange{})
	}

	count := 0
	for {
		select {
		case <-sub.PositionChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
