package holdem

import "headsupholdem-server/pkg/deck"

// Player is a seat at the table. Chips persist across hands; everything else
// is per-hand or per-betting-round state owned by the Game.
type Player struct {
	id   int64
	name string
	isAI bool

	chips      int
	currentBet int // total committed this hand
	roundBet   int // committed in the current betting round
	hand       deck.Hand
	folded     bool
	acted      bool
	isDealer   bool
}

// Seat identifies a player joining a match
type Seat struct {
	ID   int64
	Name string
	IsAI bool
}

func newPlayer(seat Seat, chips int) *Player {
	return &Player{
		id:    seat.ID,
		name:  seat.Name,
		isAI:  seat.IsAI,
		chips: chips,
		hand:  make(deck.Hand, 0, 2),
	}
}

// ID returns the player's stable identity
func (p *Player) ID() int64 {
	return p.id
}

// Name returns the player's display name
func (p *Player) Name() string {
	return p.name
}

// IsAI returns true if the seat is CPU-controlled
func (p *Player) IsAI() bool {
	return p.isAI
}

// Chips returns the player's current stack
func (p *Player) Chips() int {
	return p.chips
}

// IsDealer returns true if the player holds the dealer button
func (p *Player) IsDealer() bool {
	return p.isDealer
}

// Folded returns true if the player folded this hand
func (p *Player) Folded() bool {
	return p.folded
}

// allIn is true once the player has no chips behind. An all-in player cannot
// act but remains eligible to win.
func (p *Player) allIn() bool {
	return !p.folded && p.chips == 0
}

// live is true while the player has not folded
func (p *Player) live() bool {
	return !p.folded
}

// canAct is true if the player can still make betting decisions
func (p *Player) canAct() bool {
	return !p.folded && p.chips > 0
}

// commit moves chips into the player's round and hand bets.
// The caller is responsible for adding the amount to the pot.
func (p *Player) commit(amount int) {
	p.chips -= amount
	p.roundBet += amount
	p.currentBet += amount
}

// postBlind commits up to amount as a dead contribution to the pot: it counts
// toward the hand total but not the live round bet, so a blind never needs to
// be matched. Returns the amount actually posted (short stacks post all-in).
func (p *Player) postBlind(amount int) int {
	if amount > p.chips {
		amount = p.chips
	}

	p.chips -= amount
	p.currentBet += amount

	return amount
}

// newBettingRound resets the player's per-round state
func (p *Player) newBettingRound() {
	p.roundBet = 0
	p.acted = false
}

// newHand resets the player's per-hand state
func (p *Player) newHand() {
	p.currentBet = 0
	p.roundBet = 0
	p.hand = make(deck.Hand, 0, 2)
	p.folded = false
	p.acted = false
}
