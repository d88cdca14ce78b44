package domain

import (
	"math"
	"time"

	"stageshow/errors"
)

// MaxTimerSeconds caps a countdown request; anything above it is treated as
// an operator mistake rather than a one-hour-plus stage timer.
const MaxTimerSeconds = 3600

// Reduce applies one operator action to a snapshot and returns the complete
// next snapshot, or a named validation error. The input state is never
// mutated, so a failed attempt is indistinguishable from a no-op at the
// store level.
//
// Every action, including the no-op fallback for unrecognized tags,
// refreshes runtime.lastActionAt.
func Reduce(state ShowState, action Action, catalog Catalog, now time.Time) (ShowState, error) {
	next := state
	next.Runtime.LastActionAt = ToMillis(now)

	switch action.Type {
	case ActionSetPack:
		if _, ok := catalog.Get(action.PackID); !ok {
			return ShowState{}, errors.ErrUnknownPack
		}
		packID := action.PackID
		next.Selection.PackID = &packID
		next.Selection.QuestionIndex = 0
		resetPresentation(&next)
		return next, nil

	case ActionSetQuestionIndex:
		next.Selection.QuestionIndex = clampIndex(action.Index, questionCount(next, catalog))
		resetPresentation(&next)
		return next, nil

	case ActionPrev:
		idx := float64(next.Selection.QuestionIndex - 1)
		next.Selection.QuestionIndex = clampIndex(idx, questionCount(next, catalog))
		resetPresentation(&next)
		return next, nil

	case ActionNext:
		idx := float64(next.Selection.QuestionIndex + 1)
		next.Selection.QuestionIndex = clampIndex(idx, questionCount(next, catalog))
		resetPresentation(&next)
		return next, nil

	case ActionStart:
		next.UI.Phase = PhaseQuestion
		next.UI.Reveal = RevealNone
		startedAt := ToMillis(now)
		next.Runtime.StartedAt = &startedAt
		return next, nil

	case ActionReveal:
		if action.Step != RevealHint && action.Step != RevealAnswer {
			return ShowState{}, errors.ErrInvalidRevealStep
		}
		next.UI.Reveal = action.Step
		next.UI.Phase = PhaseQuestion
		return next, nil

	case ActionTimerStart:
		seconds := action.Seconds
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 || seconds > MaxTimerSeconds {
			return ShowState{}, errors.ErrInvalidTimerDuration
		}
		duration := int(math.Trunc(seconds))
		endsAt := Millis(now.UnixMilli() + int64(seconds*1000))
		next.UI.Timer = Timer{EndsAt: &endsAt, DurationSec: &duration}
		return next, nil

	case ActionTimerStop:
		next.UI.Timer = Timer{}
		return next, nil

	case ActionFX:
		if action.Effect == "" {
			return ShowState{}, errors.ErrEmptyEffect
		}
		effect := action.Effect
		next.UI.FX = FX{ID: next.UI.FX.ID + 1, Type: &effect}
		return next, nil

	case ActionReset:
		resetPresentation(&next)
		next.Runtime.StartedAt = nil
		return next, nil

	default:
		// Unrecognized or malformed action shape: absorbed as a no-op that
		// still refreshes lastActionAt. See the action decoder for why this
		// is tolerated instead of rejected.
		return next, nil
	}
}

// resetPresentation returns the visible surface to its neutral shape: idle
// phase, nothing revealed, no running countdown. Navigation and reset share
// it, which is what maintains the "phase==idle implies reveal==none"
// invariant across every transition.
func resetPresentation(state *ShowState) {
	state.UI.Phase = PhaseIdle
	state.UI.Reveal = RevealNone
	state.UI.Timer = Timer{}
}

// questionCount resolves the length of the currently selected pack, or 0
// when no pack is selected or the id no longer resolves.
func questionCount(state ShowState, catalog Catalog) int {
	if state.Selection.PackID == nil {
		return 0
	}
	pack, ok := catalog.Get(*state.Selection.PackID)
	if !ok {
		return 0
	}
	return len(pack.Questions)
}

// clampIndex bounds a requested index into [0, length-1] using truncation
// toward zero, never rounding. Non-finite requests and empty packs clamp
// to 0.
func clampIndex(idx float64, length int) int {
	if length <= 0 {
		return 0
	}
	if math.IsNaN(idx) || math.IsInf(idx, 0) {
		return 0
	}
	n := int(math.Trunc(idx))
	if n < 0 {
		return 0
	}
	if n > length-1 {
		return length - 1
	}
	return n
}
