package holdem

import "encoding/json"

// Phase represents where the game is in a hand
type Phase int

// constants for Phase, in hand order. The deal phases are transient: the
// engine deals and advances to the following betting phase in the same
// transition, so they are never externally observable.
const (
	PhaseIdle Phase = iota
	PhasePreFlopBetting
	PhaseDealFlop
	PhaseFlopBetting
	PhaseDealTurn
	PhaseTurnBetting
	PhaseDealRiver
	PhaseFinalBetting
	PhaseShowdown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreFlopBetting:
		return "pre-flop-betting"
	case PhaseDealFlop:
		return "deal-flop"
	case PhaseFlopBetting:
		return "flop-betting"
	case PhaseDealTurn:
		return "deal-turn"
	case PhaseTurnBetting:
		return "turn-betting"
	case PhaseDealRiver:
		return "deal-river"
	case PhaseFinalBetting:
		return "final-betting"
	case PhaseShowdown:
		return "showdown"
	}

	return ""
}

// IsBetting returns true if the phase is one of the four betting rounds
func (p Phase) IsBetting() bool {
	switch p {
	case PhasePreFlopBetting, PhaseFlopBetting, PhaseTurnBetting, PhaseFinalBetting:
		return true
	}

	return false
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}
