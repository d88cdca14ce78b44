package domain

import "encoding/json"

// ActionType tags the closed set of operator actions. The reducer is an
// exhaustive switch over these tags with a defined no-op fallback for
// anything else, so the transition table stays total and auditable.
type ActionType string

const (
	ActionSetPack          ActionType = "setPack"
	ActionSetQuestionIndex ActionType = "setQuestionIndex"
	ActionPrev             ActionType = "prev"
	ActionNext             ActionType = "next"
	ActionStart            ActionType = "start"
	ActionReveal           ActionType = "reveal"
	ActionTimerStart       ActionType = "timerStart"
	ActionTimerStop        ActionType = "timerStop"
	ActionFX               ActionType = "fx"
	ActionReset            ActionType = "reset"
)

// Action is the tagged record submitted by the operator. Only the fields
// matching the Type are meaningful; the rest stay at their zero value.
//
// Index and Seconds are float64 on purpose: clients send arbitrary JSON
// numbers and the reducer owns clamping/truncation, not the decoder.
type Action struct {
	Type    ActionType `json:"type"`
	PackID  string     `json:"packId,omitempty"`
	Index   float64    `json:"index,omitempty"`
	Step    RevealStep `json:"step,omitempty"`
	Seconds float64    `json:"seconds,omitempty"`
	Effect  string     `json:"effect,omitempty"`
}

// DecodeAction parses a raw action payload. A payload that is not an object
// of the expected shape yields ok=false together with an untagged Action;
// callers still pass that through the reducer, where it lands on the no-op
// fallback. Display clients must never crash the operator's control stream
// over a cosmetic payload bug, so a broken shape is tolerated rather than
// rejected.
func DecodeAction(raw json.RawMessage) (Action, bool) {
	if len(raw) == 0 {
		return Action{}, false
	}
	var action Action
	if err := json.Unmarshal(raw, &action); err != nil {
		return Action{}, false
	}
	return action, true
}
