package holdem

import (
	"errors"
	"fmt"

	"headsupholdem-server/pkg/deck"
	"headsupholdem-server/pkg/protocol"
)

// Game is a heads-up match of no-limit Texas Hold'em. It persists across
// hands; cards and per-hand state are rebuilt every hand.
//
// A Game is not safe for concurrent use. All mutation must be serialized by
// the caller (the room run loop does this per match).
type Game struct {
	options Options
	players []*Player
	deck    *deck.Deck

	community   deck.Hand
	pot         int
	highBet     int
	phase       Phase
	activeIndex int
	handNumber  int

	result    *Result
	corrupted bool

	// seed is only set by tests for deterministic shuffles
	seed int64

	logChan chan []*protocol.LogMessage
}

// NewGame returns a new heads-up match in the idle phase.
// Call StartHand to deal the first hand.
func NewGame(seats []Seat, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(seats) != 2 {
		return nil, errors.New("there must be exactly two players")
	}

	if seats[0].ID == seats[1].ID {
		return nil, errors.New("players must have distinct ids")
	}

	players := make([]*Player, len(seats))
	for i, seat := range seats {
		players[i] = newPlayer(seat, opts.StartingChips)
	}

	// first seat starts with the button
	players[0].isDealer = true

	return &Game{
		options: opts,
		players: players,
		phase:   PhaseIdle,
		logChan: make(chan []*protocol.LogMessage, 256),
	}, nil
}

// LogChan returns a channel the game sends hand log messages on
func (g *Game) LogChan() <-chan []*protocol.LogMessage {
	return g.logChan
}

// Options returns the match options
func (g *Game) Options() Options {
	return g.options
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Pot returns the chips committed this hand
func (g *Game) Pot() int {
	return g.pot
}

// Players returns the seats in table order
func (g *Game) Players() []*Player {
	return g.players
}

// Result returns the outcome of the current hand, or nil if it is unresolved
func (g *Game) Result() *Result {
	return g.result
}

// IsCorrupted returns true if the match failed a consistency check
func (g *Game) IsCorrupted() bool {
	return g.corrupted
}

// ActivePlayer returns the player whose turn it is, or nil outside a betting round
func (g *Game) ActivePlayer() *Player {
	if !g.phase.IsBetting() {
		return nil
	}

	return g.players[g.activeIndex]
}

// Player returns the player with the given id, or nil
func (g *Game) Player(id int64) *Player {
	for _, p := range g.players {
		if p.id == id {
			return p
		}
	}

	return nil
}

func (g *Game) dealerIndex() int {
	for i, p := range g.players {
		if p.isDealer {
			return i
		}
	}

	panic("no player has the button")
}

func (g *Game) nonDealerIndex() int {
	return (g.dealerIndex() + 1) % len(g.players)
}

// StartHand deals a new hand: fresh shuffled deck, two hole cards per player,
// and the blinds. Rebuys, if enabled, happen here and nowhere else.
func (g *Game) StartHand() error {
	if g.corrupted {
		return ErrGameCorrupted
	}

	if g.phase != PhaseIdle {
		return fmt.Errorf("cannot start a hand from the %s phase", g.phase)
	}

	for _, p := range g.players {
		if p.chips == 0 && g.options.Rebuy {
			p.chips = g.options.StartingChips
			g.logChan <- protocol.SimpleLogMessageSlice(p.id, "{} rebought for %d chips", p.chips)
		}

		if p.chips == 0 {
			return fmt.Errorf("%s is out of chips", p.name)
		}

		p.newHand()
	}

	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.highBet = 0
	g.result = nil
	g.handNumber++

	g.deck = deck.New()
	g.deck.Shuffle(g.seed)

	// two passes, non-dealer first
	for i := 0; i < 2; i++ {
		for j := 0; j < len(g.players); j++ {
			p := g.players[(g.nonDealerIndex()+j)%len(g.players)]

			card, err := g.deck.Draw()
			if err != nil {
				return g.fail("deck underflow dealing hole cards")
			}

			p.hand.AddCard(card)
		}
	}

	// the dealer posts the small blind, the other seat the big blind.
	// blinds are dead: they seed the pot but are not live round bets.
	dealer := g.players[g.dealerIndex()]
	nonDealer := g.players[g.nonDealerIndex()]
	g.pot += dealer.postBlind(g.options.SmallBlind)
	g.pot += nonDealer.postBlind(g.options.BigBlind)

	g.logChan <- protocol.SimpleLogMessageSlice(0, "hand #%d: blinds %d/%d", g.handNumber, g.options.SmallBlind, g.options.BigBlind)

	g.enterBettingPhase(PhasePreFlopBetting)
	return nil
}

// enterBettingPhase resets the per-round state and seats the first decision.
// The non-dealer acts first in every betting round.
func (g *Game) enterBettingPhase(phase Phase) {
	g.phase = phase
	g.highBet = 0
	for _, p := range g.players {
		p.newBettingRound()
	}

	g.activeIndex = g.nonDealerIndex()
	if !g.players[g.activeIndex].canAct() {
		g.advanceTurn()
	}

	// blinds can put a seat all-in before anyone acts. there is no one left
	// to bet against, so run the board out
	if g.anyLiveAllIn() {
		g.runOutAndShowdown()
	}
}

// Apply validates and applies a single player action. A RejectedActionError
// leaves the game state untouched and is safe to report to the sender.
func (g *Game) Apply(playerID int64, action Action) error {
	if g.corrupted {
		return ErrGameCorrupted
	}

	p := g.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}

	if !g.phase.IsBetting() {
		return RejectedActionError("no betting round in progress")
	}

	if g.players[g.activeIndex] != p {
		return RejectedActionError("it is not your turn")
	}

	switch action.Type {
	case ActionCheck:
		if p.roundBet < g.highBet {
			return RejectedActionError(fmt.Sprintf("cannot check when %d more is required", g.highBet-p.roundBet))
		}

		p.acted = true
		g.logChan <- protocol.SimpleLogMessageSlice(p.id, "{} checked")
	case ActionBet:
		if action.Amount <= 0 {
			return RejectedActionError("bet must be greater than zero")
		}

		if action.Amount > p.chips {
			return RejectedActionError(fmt.Sprintf("bet of %d exceeds your %d chips", action.Amount, p.chips))
		}

		p.commit(action.Amount)
		g.pot += action.Amount
		p.acted = true

		// a raise re-opens the round: everyone else must respond again.
		// a call or check never does
		prevHigh := g.highBet
		g.highBet = g.maxLiveRoundBet()
		if g.highBet > prevHigh {
			for _, other := range g.players {
				if other != p && other.live() {
					other.acted = false
				}
			}
		}

		if p.allIn() {
			g.logChan <- protocol.SimpleLogMessageSlice(p.id, "{} went all-in with %d", action.Amount)
		} else {
			g.logChan <- protocol.SimpleLogMessageSlice(p.id, "{} bet %d", action.Amount)
		}
	case ActionFold:
		p.folded = true
		p.acted = true
		g.logChan <- protocol.SimpleLogMessageSlice(p.id, "{} folded")

		if g.liveCount() == 1 {
			g.resolveFoldOut()
			return nil
		}
	default:
		return RejectedActionError(fmt.Sprintf("unknown action type %d", action.Type))
	}

	if err := g.checkInvariants(); err != nil {
		return err
	}

	if g.roundComplete() {
		g.finishBettingRound()
		return nil
	}

	g.advanceTurn()
	return nil
}

// advanceTurn moves to the next seat that can still act. If no seat can act,
// this is a no-op: the round is over.
func (g *Game) advanceTurn() {
	n := len(g.players)
	for i := 1; i <= n; i++ {
		index := (g.activeIndex + i) % n
		if g.players[index].canAct() {
			g.activeIndex = index
			return
		}
	}
}

func (g *Game) liveCount() int {
	count := 0
	for _, p := range g.players {
		if p.live() {
			count++
		}
	}

	return count
}

func (g *Game) anyLiveAllIn() bool {
	for _, p := range g.players {
		if p.allIn() {
			return true
		}
	}

	return false
}

func (g *Game) maxLiveRoundBet() int {
	max := 0
	for _, p := range g.players {
		if p.live() && p.roundBet > max {
			max = p.roundBet
		}
	}

	return max
}

// roundComplete reports whether the betting round is over: only one live
// player remains, every live player is all-in, or every live player who can
// still act has acted and they all share the same round bet.
func (g *Game) roundComplete() bool {
	if g.liveCount() <= 1 {
		return true
	}

	allIn := true
	for _, p := range g.players {
		if p.live() && !p.allIn() {
			allIn = false
			break
		}
	}

	if allIn {
		return true
	}

	matched := -1
	for _, p := range g.players {
		if !p.live() || p.allIn() {
			continue
		}

		if !p.acted {
			return false
		}

		if matched == -1 {
			matched = p.roundBet
		} else if p.roundBet != matched {
			return false
		}
	}

	return true
}

// finishBettingRound advances out of a completed betting round: deal the next
// street, or run the board out if betting is no longer possible, or resolve
// the showdown after the final round.
func (g *Game) finishBettingRound() {
	if g.anyLiveAllIn() {
		g.runOutAndShowdown()
		return
	}

	switch g.phase {
	case PhasePreFlopBetting:
		g.phase = PhaseDealFlop
		if err := g.dealCommunity(3); err != nil {
			return
		}

		g.enterBettingPhase(PhaseFlopBetting)
	case PhaseFlopBetting:
		g.phase = PhaseDealTurn
		if err := g.dealCommunity(1); err != nil {
			return
		}

		g.enterBettingPhase(PhaseTurnBetting)
	case PhaseTurnBetting:
		g.phase = PhaseDealRiver
		if err := g.dealCommunity(1); err != nil {
			return
		}

		g.enterBettingPhase(PhaseFinalBetting)
	case PhaseFinalBetting:
		g.resolveShowdown()
	}
}

// dealCommunity appends n cards to the board, optionally burning one first
func (g *Game) dealCommunity(n int) error {
	if g.options.BurnCard {
		if _, err := g.deck.Draw(); err != nil {
			return g.fail("deck underflow on the burn card")
		}
	}

	for i := 0; i < n; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return g.fail("deck underflow dealing the board")
		}

		g.community.AddCard(card)
	}

	return nil
}

// runOutAndShowdown deals any remaining community cards and resolves the
// hand. Used when a seat is all-in and no further betting is possible.
func (g *Game) runOutAndShowdown() {
	for len(g.community) < 5 {
		n := 1
		if len(g.community) == 0 {
			n = 3
		}

		if err := g.dealCommunity(n); err != nil {
			return
		}
	}

	g.resolveShowdown()
}

// AdvancePhase moves a finished hand back to idle. Outside the showdown
// phase this is an idempotent no-op.
func (g *Game) AdvancePhase() {
	if g.phase != PhaseShowdown {
		return
	}

	for _, p := range g.players {
		p.newHand()
	}

	g.community = make(deck.Hand, 0, 5)
	g.pot = 0
	g.highBet = 0

	// pass the button
	dealerIndex := g.dealerIndex()
	g.players[dealerIndex].isDealer = false
	g.players[(dealerIndex+1)%len(g.players)].isDealer = true

	g.phase = PhaseIdle
}

// checkInvariants verifies the chip accounting after every action. A failure
// marks the match corrupted; it must not be silently continued.
func (g *Game) checkInvariants() error {
	total := 0
	for _, p := range g.players {
		total += p.currentBet
	}

	if total != g.pot {
		return g.fail(fmt.Sprintf("pot is %d but players committed %d", g.pot, total))
	}

	if high := g.maxLiveRoundBet(); high != g.highBet {
		return g.fail(fmt.Sprintf("high bet is %d but max live round bet is %d", g.highBet, high))
	}

	return nil
}

func (g *Game) fail(reason string) error {
	g.corrupted = true
	return &InvariantViolationError{Reason: reason}
}
