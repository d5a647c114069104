package models

import "fmt"

type TakeoverPhase int

const (
	TakeoverOff TakeoverPhase = iota
	TakeoverOn
	TakeoverPending
)

func (p TakeoverPhase) String() string {
	switch p {
	case TakeoverOff:
		return "off"
	case TakeoverOn:
		return "on"
	case TakeoverPending:
		return "pending"
	}
	return fmt.Sprintf("TakeoverPhase(%d)", int(p))
}

func (p TakeoverPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *TakeoverPhase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "off":
		*p = TakeoverOff
	case "on":
		*p = TakeoverOn
	case "pending":
		*p = TakeoverPending
	default:
		return fmt.Errorf("unknown takeover phase %q", text)
	}
	return nil
}

// TakeoverState is the switch as displayed. Target is meaningful only while Pending.
type TakeoverState struct {
	ChatID  int64         `json:"chatId"`
	Phase   TakeoverPhase `json:"phase"`
	Value   bool          `json:"value"`
	Target  bool          `json:"target,omitempty"`
	Version uint64        `json:"version"`
}

func SettledTakeover(chatID int64, value bool, version uint64) TakeoverState {
	phase := TakeoverOff
	if value {
		phase = TakeoverOn
	}
	return TakeoverState{ChatID: chatID, Phase: phase, Value: value, Version: version}
}

// TakeoverResult is the takeover mutation response body.
type TakeoverResult struct {
	Errors []string `json:"errors,omitempty"`
	Chat   *Chat    `json:"chat,omitempty"`
}

// TakeoverOutcome reports how one toggle ended.
type TakeoverOutcome struct {
	MutationID string        `json:"mutationId"`
	Version    uint64        `json:"version"`
	Applied    bool          `json:"applied"`
	Superseded bool          `json:"superseded"`
	Errors     []string      `json:"errors,omitempty"`
	Chat       *Chat         `json:"chat,omitempty"`
	State      TakeoverState `json:"state"`
}
