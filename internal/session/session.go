// Package session tracks play sessions from the free-text description
// that picked a genre through to the final score. A Recorder persists
// outcomes via the storage package and fans events out to an optional
// sink, such as the live web feed.
package session

import (
	"time"

	"github.com/google/uuid"

	"gameforge/internal/preset"
	"gameforge/internal/storage"
)

// Session describes one play-through of a generated game.
type Session struct {
	ID          string
	Genre       preset.Genre
	Description string // free text that selected the genre, may be empty
	Player      string
	Score       int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Event types published by the Recorder.
const (
	EventSessionStarted = "session_started"
	EventScoreRecorded  = "score_recorded"
	EventHighScore      = "high_score"
)

// Event is a JSON-serializable notification about session activity.
type Event struct {
	Type    string    `json:"type"`
	Session string    `json:"session"`
	Genre   string    `json:"genre"`
	Player  string    `json:"player,omitempty"`
	Score   int       `json:"score"`
	At      time.Time `json:"at"`
}

// Sink receives session events.
// Implementations must not block; the Recorder calls Announce inline.
type Sink interface {
	Announce(Event)
}

// Recorder opens and finishes sessions. Both the store and the sink are
// optional: a nil store skips persistence, a nil sink skips events, and
// a nil *Recorder is a no-op apart from stamping the session itself.
type Recorder struct {
	store *storage.Store
	sink  Sink
}

// NewRecorder creates a recorder over the given store and sink.
func NewRecorder(store *storage.Store, sink Sink) *Recorder {
	return &Recorder{store: store, sink: sink}
}

// Start opens a new session for the given genre and announces it.
func (r *Recorder) Start(genre preset.Genre, description, player string) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		Genre:       genre,
		Description: description,
		Player:      player,
		StartedAt:   time.Now(),
	}

	if r == nil {
		return s
	}

	r.announce(Event{
		Type:    EventSessionStarted,
		Session: s.ID,
		Genre:   string(s.Genre),
		Player:  s.Player,
	})
	return s
}

// Finish stamps the session with its final score and end time, persists
// it, and records the score if positive. A score that beats the stored
// best for the genre additionally announces a high score. The check runs
// before the new score lands so the first score of a genre counts too.
func (r *Recorder) Finish(s *Session, score int) error {
	if s == nil {
		return nil
	}

	s.Score = score
	s.EndedAt = time.Now()

	if r == nil {
		return nil
	}

	beatsBest := false
	if r.store != nil && score > 0 {
		best, err := r.store.HighScore(string(s.Genre))
		if err == nil && score > best {
			beatsBest = true
		}
	}

	if r.store != nil {
		entry := storage.SessionEntry{
			ID:          s.ID,
			Genre:       string(s.Genre),
			Description: s.Description,
			Player:      s.Player,
			Score:       s.Score,
			Duration:    int(s.EndedAt.Sub(s.StartedAt).Seconds()),
			StartedAt:   s.StartedAt,
			EndedAt:     s.EndedAt,
		}
		if err := r.store.SaveSession(entry); err != nil {
			return err
		}

		if score > 0 {
			if _, err := r.store.SaveScore(string(s.Genre), s.Player, score); err != nil {
				return err
			}
		}
	}

	if score > 0 {
		r.announce(Event{
			Type:    EventScoreRecorded,
			Session: s.ID,
			Genre:   string(s.Genre),
			Player:  s.Player,
			Score:   score,
		})
		if beatsBest {
			r.announce(Event{
				Type:    EventHighScore,
				Session: s.ID,
				Genre:   string(s.Genre),
				Player:  s.Player,
				Score:   score,
			})
		}
	}

	return nil
}

// announce stamps the event time and forwards it to the sink, if any.
func (r *Recorder) announce(evt Event) {
	if r.sink == nil {
		return
	}
	evt.At = time.Now().UTC()
	r.sink.Announce(evt)
}
