package web

import (
	"sync"
	"testing"
	"time"

	"gameforge/internal/preset"
	"gameforge/internal/session"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub()
	a := hub.subscribe()
	b := hub.subscribe()

	hub.Announce(session.Event{Type: session.EventScoreRecorded, Genre: "platformer", Score: 42})

	for i, c := range []*feedClient{a, b} {
		select {
		case got := <-c.events:
			if got.Type != session.EventScoreRecorded || got.Score != 42 {
				t.Errorf("client %d got %+v", i, got)
			}
		default:
			t.Errorf("client %d received nothing", i)
		}
	}
}

func TestHubSlowClientDisconnected(t *testing.T) {
	hub := NewHub()
	c := hub.subscribe()

	for i := 0; i < clientBufferSize+1; i++ {
		hub.Announce(session.Event{Type: session.EventSessionStarted})
	}

	select {
	case <-c.done:
	default:
		t.Fatal("expected slow client to be closed")
	}

	drained := 0
drain:
	for {
		select {
		case <-c.events:
			drained++
		default:
			break drain
		}
	}
	if drained != clientBufferSize {
		t.Errorf("drained %d buffered events, want %d", drained, clientBufferSize)
	}

	hub.Announce(session.Event{Type: session.EventHighScore})
	select {
	case <-c.events:
		t.Error("closed client received an event")
	default:
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	c := hub.subscribe()
	if hub.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", hub.ClientCount())
	}

	hub.unsubscribe(c)
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", hub.ClientCount())
	}

	select {
	case <-c.done:
	default:
		t.Error("expected unsubscribed client to be closed")
	}

	hub.Announce(session.Event{Type: session.EventSessionStarted})
	select {
	case <-c.events:
		t.Error("unsubscribed client received an event")
	default:
	}
}

func TestHubAnnounceWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.Announce(session.Event{Type: session.EventSessionStarted})
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0", hub.ClientCount())
	}
}

func TestHubAsRecorderSink(t *testing.T) {
	hub := NewHub()
	c := hub.subscribe()

	rec := session.NewRecorder(nil, hub)
	s := rec.Start(preset.GenreZen, "calm", "")
	if err := rec.Finish(s, 5); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	want := []string{session.EventSessionStarted, session.EventScoreRecorded}
	for _, wantType := range want {
		select {
		case evt := <-c.events:
			if evt.Type != wantType {
				t.Errorf("event type = %q, want %q", evt.Type, wantType)
			}
		default:
			t.Fatalf("missing %q event", wantType)
		}
	}
}

func TestHubConcurrentAnnounceAndSubscribe(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Announce(session.Event{Type: session.EventScoreRecorded, Score: j})
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := hub.subscribe()
			time.Sleep(time.Millisecond)
			hub.unsubscribe(c)
		}()
	}
	wg.Wait()
}
