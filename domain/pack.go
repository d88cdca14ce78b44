package domain

// Pack is an ordered, immutable sequence of questions addressed by a stable id.
// Packs are loaded once at startup and never mutated afterwards, which is what
// makes catalog lookups safe on the session mutation path.
type Pack struct {
	ID        string     `json:"id" validate:"required"`
	Title     string     `json:"title"`
	Type      string     `json:"type"`
	Questions []Question `json:"questions" validate:"required"`
}

// Question carries everything a display may progressively reveal. Which of
// these fields a display is allowed to show is gated by the session's reveal
// level, not by the payload.
type Question struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Year     int    `json:"year,omitempty"`
	Artist   string `json:"artist,omitempty"`

	// Media is a path relative to the media directory. MediaType is filled in
	// by the catalog loader when the referenced file can be probed.
	Media     string `json:"media,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

// PackSummary is the listing shape of the read-only catalog query surface.
type PackSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Catalog is the immutable, session-independent pack lookup the reducer
// validates against.
type Catalog interface {
	Get(id string) (Pack, bool)
	// FirstPackID returns the default selection for new sessions, or "" when
	// the catalog is empty. The order is deterministic across restarts.
	FirstPackID() string
	Summaries() []PackSummary
	Packs() []Pack
}
