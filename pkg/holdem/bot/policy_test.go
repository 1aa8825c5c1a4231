package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/internal/rng"
	"headsupholdem-server/pkg/deck"
	"headsupholdem-server/pkg/holdem"
)

func testView(hole string, community string, highBet, roundBet, chips, pot int) *holdem.Snapshot {
	return &holdem.Snapshot{
		Phase:     holdem.PhasePreFlopBetting,
		Community: deck.CardsFromString(community),
		Pot:       pot,
		HighBet:   highBet,
		MinBet:    20,
		Players: []*holdem.PlayerSnapshot{
			{ID: 1, Name: "alpha", Chips: 1000},
			{ID: 2, Name: "bravo", Chips: chips, RoundBet: roundBet, Hand: deck.CardsFromString(hole)},
		},
	}
}

func TestPolicy_Decide_trashFoldsToPressure(t *testing.T) {
	a := assert.New(t)

	policy := New(rng.NewSeeded(1))

	// 7-2 offsuit facing a pot-sized bet
	view := testView("7c,2d", "", 500, 0, 1000, 500)
	a.Equal(holdem.Fold(), policy.Decide(view, 2))
}

func TestPolicy_Decide_trashChecksWhenFree(t *testing.T) {
	a := assert.New(t)

	policy := New(rng.NewSeeded(1))

	view := testView("7c,2d", "", 0, 0, 1000, 30)
	a.Equal(holdem.Check(), policy.Decide(view, 2))
}

func TestPolicy_Decide_monsterNeverFolds(t *testing.T) {
	a := assert.New(t)

	// aces facing an all-in: the call is forced regardless of the rng
	for seed := int64(0); seed < 50; seed++ {
		policy := New(rng.NewSeeded(seed))

		view := testView("14c,14d", "", 1000, 0, 1000, 1030)
		a.Equal(holdem.Bet(1000), policy.Decide(view, 2))
	}
}

func TestPolicy_Decide_postFlopUsesMadeHand(t *testing.T) {
	a := assert.New(t)

	// a flopped flush never folds, even to a large bet
	for seed := int64(0); seed < 50; seed++ {
		policy := New(rng.NewSeeded(seed))

		view := testView("14s,9s", "2s,7s,12s", 800, 0, 800, 900)
		action := policy.Decide(view, 2)
		a.NotEqual(holdem.ActionFold, action.Type)
	}
}

func TestPolicy_Decide_unknownPlayerChecks(t *testing.T) {
	a := assert.New(t)

	policy := New(nil)

	view := testView("7c,2d", "", 0, 0, 1000, 30)
	a.Equal(holdem.Check(), policy.Decide(view, 99))

	// a redacted view (no hole cards) never proposes a bet
	view.Players[1].Hand = nil
	a.Equal(holdem.Check(), policy.Decide(view, 2))
}

func TestPolicy_Decide_deterministicWithSeed(t *testing.T) {
	a := assert.New(t)

	view := testView("13s,12s", "", 60, 0, 1000, 90)

	first := New(rng.NewSeeded(42)).Decide(view, 2)
	second := New(rng.NewSeeded(42)).Decide(view, 2)
	a.Equal(first, second)
}

// every proposed action must be legal for the seat: bets are positive, within
// the stack, and at least a call unless the seat is all-in
func TestPolicy_Decide_alwaysLegal(t *testing.T) {
	a := assert.New(t)

	hands := []string{"7c,2d", "14c,14d", "13s,12s", "9h,9d", "5c,6c"}
	boards := []string{"", "2s,7s,12s", "9s,10d,11h,3c", "2c,3d,8h,13c,14h"}

	for seed := int64(0); seed < 20; seed++ {
		policy := New(rng.NewSeeded(seed))

		for _, hand := range hands {
			for _, board := range boards {
				for _, highBet := range []int{0, 20, 100, 950, 1000} {
					view := testView(hand, board, highBet, 0, 1000, 30+highBet)
					action := policy.Decide(view, 2)

					switch action.Type {
					case holdem.ActionBet:
						a.Greater(action.Amount, 0)
						a.LessOrEqual(action.Amount, 1000)
						a.GreaterOrEqual(action.Amount, min(highBet, 1000))
					case holdem.ActionCheck:
						a.LessOrEqual(highBet, 0, "cannot check facing a bet")
					}
				}
			}
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
