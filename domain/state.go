package domain

import "time"

// Millis is a unix-millisecond timestamp, the wire representation every
// connected client receives. Clients derive "seconds remaining" for a timer
// by subtracting their own wall clock from an absolute Millis deadline, so
// the server never pushes a ticking countdown.
type Millis int64

// ToMillis converts a wall-clock instant to its wire representation.
func ToMillis(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Phase is the coarse display mode of a session.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseQuestion Phase = "question"
)

// RevealStep gates how much of the current question a display may show.
type RevealStep string

const (
	RevealNone   RevealStep = "none"
	RevealHint   RevealStep = "hint"
	RevealAnswer RevealStep = "answer"
)

// SessionInfo is set once when a session's state is created and never mutated.
type SessionInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt Millis `json:"createdAt"`
}

// Selection identifies the current pack and question within it.
type Selection struct {
	PackID        *string `json:"packId"`
	QuestionIndex int     `json:"questionIndex"`
}

// Timer is an inert absolute deadline. No background task expires it;
// clearing it is itself a normal serialized action.
type Timer struct {
	EndsAt      *Millis `json:"endsAt"`
	DurationSec *int    `json:"durationSec"`
}

// FX is a one-shot effect trigger broadcast via state. ID increases
// monotonically within a session; receivers treat an already-seen ID as
// handled, which keeps effect playback idempotent across redelivery.
type FX struct {
	ID   uint64  `json:"id"`
	Type *string `json:"type"`
}

// UI is everything a display renders moment to moment.
type UI struct {
	Phase  Phase      `json:"phase"`
	Reveal RevealStep `json:"reveal"`
	Timer  Timer      `json:"timer"`
	FX     FX         `json:"fx"`
}

// RuntimeInfo is bookkeeping; only LastActionAt participates in any decision
// (idle-session eviction). Version is stamped by the store on every commit,
// increasing by one per accepted action within a session; delivery paths use
// it to discard a stale snapshot that arrives after a newer one.
type RuntimeInfo struct {
	StartedAt    *Millis `json:"startedAt"`
	LastActionAt Millis  `json:"lastActionAt"`
	Version      uint64  `json:"version"`
}

// ShowState is the single authoritative record of a session. It is immutable
// by replacement: every accepted action produces a complete new snapshot and
// the previous one is discarded. Pointer fields are only ever reassigned,
// never written through, so a shallow copy of the struct is an independent
// snapshot.
type ShowState struct {
	Session   SessionInfo `json:"session"`
	Selection Selection   `json:"selection"`
	UI        UI          `json:"ui"`
	Runtime   RuntimeInfo `json:"runtime"`
}

// NewShowState builds the initial snapshot for a session: default pack is the
// first pack in catalog order (nil selection when the catalog is empty),
// idle phase, nothing revealed, timer and fx cleared.
func NewShowState(sessionID, title string, catalog Catalog, now time.Time) ShowState {
	var packID *string
	if first := catalog.FirstPackID(); first != "" {
		packID = &first
	}
	at := ToMillis(now)
	return ShowState{
		Session: SessionInfo{
			ID:        sessionID,
			Title:     title,
			CreatedAt: at,
		},
		Selection: Selection{
			PackID:        packID,
			QuestionIndex: 0,
		},
		UI: UI{
			Phase:  PhaseIdle,
			Reveal: RevealNone,
		},
		Runtime: RuntimeInfo{
			LastActionAt: at,
		},
	}
}
