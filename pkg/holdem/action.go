package holdem

import "fmt"

// ActionType is the kind of action a player can take
type ActionType int

// constants for ActionType
const (
	ActionCheck ActionType = iota
	ActionBet
	ActionFold
)

func (a ActionType) String() string {
	switch a {
	case ActionCheck:
		return "check"
	case ActionBet:
		return "bet"
	case ActionFold:
		return "fold"
	}

	return ""
}

// ActionTypeFromString parses a client-supplied action name
func ActionTypeFromString(s string) (ActionType, error) {
	switch s {
	case "check":
		return ActionCheck, nil
	case "bet":
		return ActionBet, nil
	case "fold":
		return ActionFold, nil
	}

	return 0, fmt.Errorf("%s is not a valid action", s)
}

// Action is an action a player can take. Amount is only meaningful for bets.
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount"`
}

// Check returns a check action
func Check() Action {
	return Action{Type: ActionCheck}
}

// Bet returns a bet action for the amount
func Bet(amount int) Action {
	return Action{Type: ActionBet, Amount: amount}
}

// Fold returns a fold action
func Fold() Action {
	return Action{Type: ActionFold}
}

func (a Action) String() string {
	if a.Type == ActionBet {
		return fmt.Sprintf("bet %d", a.Amount)
	}

	return a.Type.String()
}
