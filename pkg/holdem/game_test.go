package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/pkg/deck"
)

func testSeats() []Seat {
	return []Seat{
		{ID: 1, Name: "alpha"},
		{ID: 2, Name: "bravo"},
	}
}

// newTestGame returns a started hand with a deterministic shuffle.
// Seat 1 has the button and posts the small blind; seat 2 posts the big
// blind and acts first.
func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()

	game, err := NewGame(testSeats(), opts)
	assert.NoError(t, err)

	game.seed = 1
	assert.NoError(t, game.StartHand())

	return game
}

func drainLogs(g *Game) {
	for {
		select {
		case <-g.LogChan():
		default:
			return
		}
	}
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	game, err := NewGame(testSeats(), DefaultOptions())
	a.NoError(err)
	a.Equal(PhaseIdle, game.Phase())
	a.Equal(1000, game.Players()[0].Chips())
	a.Equal(1000, game.Players()[1].Chips())
	a.True(game.Players()[0].IsDealer())
	a.False(game.Players()[1].IsDealer())
	a.Nil(game.ActivePlayer())

	game, err = NewGame(testSeats()[0:1], DefaultOptions())
	a.EqualError(err, "there must be exactly two players")
	a.Nil(game)

	game, err = NewGame([]Seat{{ID: 1}, {ID: 1}}, DefaultOptions())
	a.EqualError(err, "players must have distinct ids")
	a.Nil(game)

	opts := DefaultOptions()
	opts.SmallBlind = 50
	opts.BigBlind = 20
	_, err = NewGame(testSeats(), opts)
	a.EqualError(err, "small blind cannot exceed the big blind")

	opts = DefaultOptions()
	opts.StartingChips = 0
	_, err = NewGame(testSeats(), opts)
	a.EqualError(err, "starting chips must be greater than zero")

	opts = DefaultOptions()
	opts.BigBlind = 2000
	_, err = NewGame(testSeats(), opts)
	a.EqualError(err, "big blind cannot exceed the starting chips")
}

func TestGame_StartHand(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	a.Equal(PhasePreFlopBetting, game.Phase())
	a.Equal(2, len(game.Players()[0].hand))
	a.Equal(2, len(game.Players()[1].hand))
	a.Equal(48, game.deck.CardsLeft())

	// blinds: dealer posts 10, non-dealer posts 20
	a.Equal(990, game.Players()[0].Chips())
	a.Equal(980, game.Players()[1].Chips())
	a.Equal(30, game.Pot())

	// blinds are dead: no live bet to match
	a.Equal(0, game.highBet)
	a.Equal(0, game.Players()[0].roundBet)
	a.Equal(0, game.Players()[1].roundBet)

	// non-dealer acts first
	a.Equal(int64(2), game.ActivePlayer().ID())

	// cannot start a hand mid-hand
	a.EqualError(game.StartHand(), "cannot start a hand from the pre-flop-betting phase")
}

func TestGame_StartHand_dealsUniqueCards(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	seen := make(map[string]bool)
	for _, p := range game.Players() {
		for _, card := range p.hand {
			a.False(seen[deck.CardToString(card)])
			seen[deck.CardToString(card)] = true
		}
	}

	for _, card := range game.deck.Cards {
		a.False(seen[deck.CardToString(card)])
		seen[deck.CardToString(card)] = true
	}

	a.Equal(52, len(seen))
}

func TestGame_Apply_turnEnforcement(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	err := game.Apply(1, Check())
	a.Equal(RejectedActionError("it is not your turn"), err)

	// no state was mutated
	a.Equal(30, game.Pot())
	a.Equal(int64(2), game.ActivePlayer().ID())

	err = game.Apply(99, Check())
	a.Equal(ErrPlayerNotFound, err)

	a.NoError(game.Apply(2, Check()))
	a.Equal(int64(1), game.ActivePlayer().ID())
}

func TestGame_Apply_outsideBettingRound(t *testing.T) {
	a := assert.New(t)

	game, err := NewGame(testSeats(), DefaultOptions())
	a.NoError(err)

	err = game.Apply(1, Check())
	a.Equal(RejectedActionError("no betting round in progress"), err)
}

func TestGame_Apply_illegalCheck(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	a.NoError(game.Apply(2, Bet(50)))

	err := game.Apply(1, Check())
	a.Equal(RejectedActionError("cannot check when 50 more is required"), err)
	a.Equal(80, game.Pot())
}

func TestGame_Apply_betValidation(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	err := game.Apply(2, Bet(0))
	a.Equal(RejectedActionError("bet must be greater than zero"), err)

	err = game.Apply(2, Bet(-5))
	a.Equal(RejectedActionError("bet must be greater than zero"), err)

	err = game.Apply(2, Bet(981))
	a.Equal(RejectedActionError("bet of 981 exceeds your 980 chips"), err)

	a.Equal(30, game.Pot())
	a.Equal(980, game.Players()[1].Chips())
}

func TestGame_Apply_raiseReopensRound(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	// seat 2 checks, seat 1 bets: the raise re-opens the round for seat 2
	a.NoError(game.Apply(2, Check()))
	a.True(game.Players()[1].acted)

	a.NoError(game.Apply(1, Bet(50)))
	a.Equal(50, game.highBet)
	a.False(game.Players()[1].acted, "a raise must clear acted for the other live player")
	a.Equal(PhasePreFlopBetting, game.Phase())

	// seat 2 calls: not a raise, so the round completes and the flop comes
	a.NoError(game.Apply(2, Bet(50)))
	a.Equal(PhaseFlopBetting, game.Phase())
	a.Equal(3, len(game.community))
	a.Equal(130, game.Pot())

	// round state was reset
	a.Equal(0, game.highBet)
	a.Equal(0, game.Players()[0].roundBet)
	a.False(game.Players()[0].acted)
	a.Equal(int64(2), game.ActivePlayer().ID(), "non-dealer acts first after the flop")
}

func TestGame_Apply_foldOut(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	a.NoError(game.Apply(2, Fold()))

	a.Equal(PhaseShowdown, game.Phase())
	a.Equal(0, game.Pot())
	a.Equal(1020, game.Players()[0].Chips())
	a.Equal(980, game.Players()[1].Chips())

	result := game.Result()
	a.NotNil(result)
	a.Equal(int64(1), result.WinnerID)
	a.Equal(30, result.AmountWon)
	a.Equal(ReasonOpponentFolded, result.Reason)
	a.Equal("", result.WinningHandLabel)

	game.AdvancePhase()
	a.Equal(PhaseIdle, game.Phase())
	a.Equal(0, len(game.community))

	// button passed to seat 2
	a.False(game.Players()[0].IsDealer())
	a.True(game.Players()[1].IsDealer())
}

// both players check through every street with blinds 10/20: the final pot is
// the sum of the blinds only, and the better hand takes it at showdown
func TestGame_checkThroughShowdown(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	checkBoth := func(t *testing.T, expectedPhase Phase) {
		t.Helper()
		a.NoError(game.Apply(2, Check()))
		a.NoError(game.Apply(1, Check()))
		a.Equal(expectedPhase, game.Phase())
	}

	checkBoth(t, PhaseFlopBetting)
	a.Equal(3, len(game.community))
	checkBoth(t, PhaseTurnBetting)
	a.Equal(4, len(game.community))
	checkBoth(t, PhaseFinalBetting)
	a.Equal(5, len(game.community))

	a.Equal(30, game.Pot(), "checking through leaves the blinds as the entire pot")

	// rig the showdown so seat 2 flops quads and seat 1 is left with a pair
	game.players[0].hand = deck.CardsFromString("2c,7d")
	game.players[1].hand = deck.CardsFromString("9c,9d")
	game.community = deck.CardsFromString("9h,9s,5c,6d,13h")

	a.NoError(game.Apply(2, Check()))
	a.NoError(game.Apply(1, Check()))

	a.Equal(PhaseShowdown, game.Phase())
	result := game.Result()
	a.NotNil(result)
	a.Equal(int64(2), result.WinnerID)
	a.Equal(30, result.AmountWon)
	a.Equal(ReasonShowdown, result.Reason)
	a.Equal("Four of a Kind", result.WinningHandLabel)

	a.Equal(1010, game.Players()[1].Chips())
	a.Equal(990, game.Players()[0].Chips())
}

func TestGame_allInRunOut(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	// rig the hole cards and the rest of the deck before the all-in
	game.players[0].hand = deck.CardsFromString("14c,14d")
	game.players[1].hand = deck.CardsFromString("5c,6d")
	game.deck.Cards = deck.CardsFromString("2h,9s,11h,3d,13s,4c,8h")

	a.NoError(game.Apply(2, Bet(980))) // all-in
	a.True(game.Players()[1].allIn())
	a.Equal(PhasePreFlopBetting, game.Phase(), "round is still open for the caller")

	a.NoError(game.Apply(1, Bet(980)))

	// the board ran out and the showdown resolved without further actions
	a.Equal(PhaseShowdown, game.Phase())
	a.Equal(5, len(game.community))

	result := game.Result()
	a.NotNil(result)
	a.Equal(int64(1), result.WinnerID)
	a.Equal(1990, result.AmountWon)
	a.Equal(ReasonShowdown, result.Reason)
	a.Equal("Pair", result.WinningHandLabel)

	a.Equal(2000, game.Players()[0].Chips())
	a.Equal(0, game.Players()[1].Chips())
}

func TestGame_splitPot(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.SmallBlind = 5
	opts.BigBlind = 10
	game := newTestGame(t, opts)

	// walk to the final betting round
	for i := 0; i < 3; i++ {
		a.NoError(game.Apply(2, Check()))
		a.NoError(game.Apply(1, Check()))
	}

	a.Equal(15, game.Pot())

	// both players play the board: an exact tie
	game.players[0].hand = deck.CardsFromString("2c,3d")
	game.players[1].hand = deck.CardsFromString("2d,3c")
	game.community = deck.CardsFromString("14s,13s,12s,11s,10s")

	a.NoError(game.Apply(2, Check()))
	a.NoError(game.Apply(1, Check()))

	result := game.Result()
	a.NotNil(result)
	a.True(result.Split)
	a.Equal(ReasonShowdown, result.Reason)
	a.Equal("Straight Flush", result.WinningHandLabel)

	// the odd chip goes to the first seat
	a.Equal(int64(1), result.WinnerID)
	a.Equal(8, result.AmountWon)
	a.Equal(1003, game.Players()[0].Chips())
	a.Equal(997, game.Players()[1].Chips())
	a.Equal(0, game.Pot())
}

func TestGame_potMatchesCommittedBets(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	assertPotInvariant := func(t *testing.T) {
		t.Helper()

		total := 0
		for _, p := range game.Players() {
			total += p.currentBet
		}

		a.Equal(total, game.Pot())
	}

	assertPotInvariant(t)
	a.NoError(game.Apply(2, Bet(40)))
	assertPotInvariant(t)
	a.NoError(game.Apply(1, Bet(100)))
	assertPotInvariant(t)
	a.NoError(game.Apply(2, Bet(60)))
	assertPotInvariant(t)

	a.Equal(PhaseFlopBetting, game.Phase())
	a.NoError(game.Apply(2, Bet(25)))
	assertPotInvariant(t)
	a.NoError(game.Apply(1, Bet(25)))
	assertPotInvariant(t)
}

func TestGame_AdvancePhase_idempotent(t *testing.T) {
	a := assert.New(t)

	game, err := NewGame(testSeats(), DefaultOptions())
	a.NoError(err)

	game.AdvancePhase()
	a.Equal(PhaseIdle, game.Phase())

	game.seed = 1
	a.NoError(game.StartHand())

	before := game.Snapshot(1)
	game.AdvancePhase()
	a.Equal(before, game.Snapshot(1), "advancing outside showdown must not change state")
	a.Equal(PhasePreFlopBetting, game.Phase())
}

func TestGame_rebuy(t *testing.T) {
	a := assert.New(t)

	game, err := NewGame(testSeats(), DefaultOptions())
	a.NoError(err)

	game.players[1].chips = 0
	game.seed = 1
	a.NoError(game.StartHand())
	a.Equal(980, game.Players()[1].Chips(), "rebuy to the default stack, then post the big blind")

	opts := DefaultOptions()
	opts.Rebuy = false
	game, err = NewGame(testSeats(), opts)
	a.NoError(err)

	game.players[1].chips = 0
	a.EqualError(game.StartHand(), "bravo is out of chips")
}

func TestGame_invariantViolation(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())

	// sabotage the pot accounting
	game.pot += 5

	err := game.Apply(2, Check())
	a.Error(err)
	_, ok := err.(*InvariantViolationError)
	a.True(ok)
	a.EqualError(err, "invariant violation: pot is 35 but players committed 30")
	a.True(game.IsCorrupted())

	// a corrupted match rejects everything
	a.Equal(ErrGameCorrupted, game.Apply(1, Check()))
	a.Equal(ErrGameCorrupted, game.StartHand())
}

func TestGame_burnCard(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.BurnCard = true
	game := newTestGame(t, opts)

	a.NoError(game.Apply(2, Check()))
	a.NoError(game.Apply(1, Check()))

	a.Equal(3, len(game.community))
	// 52 - 4 hole - 1 burn - 3 flop
	a.Equal(44, game.deck.CardsLeft())
}

func TestGame_logMessages(t *testing.T) {
	a := assert.New(t)

	game := newTestGame(t, DefaultOptions())
	drainLogs(game)

	a.NoError(game.Apply(2, Bet(50)))

	select {
	case msgs := <-game.LogChan():
		a.Equal(1, len(msgs))
		a.Equal([]int64{2}, msgs[0].PlayerIDs)
		a.Equal("{} bet 50", msgs[0].Message)
	default:
		t.Error("expected a log message")
	}
}
