package holdem

import (
	"headsupholdem-server/pkg/deck"
	"headsupholdem-server/pkg/poker"
)

// PlayerSnapshot is the externally visible state of a seat. Hand is nil
// unless the viewer is entitled to see the hole cards.
type PlayerSnapshot struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Chips     int       `json:"chips"`
	Bet       int       `json:"bet"`
	RoundBet  int       `json:"roundBet"`
	Folded    bool      `json:"folded"`
	AllIn     bool      `json:"allIn"`
	IsDealer  bool      `json:"isDealer"`
	IsActive  bool      `json:"isActive"`
	Hand      deck.Hand `json:"hand,omitempty"`
	HandLabel string    `json:"handLabel,omitempty"`
}

// Snapshot is the read surface of a match: everything a client needs to
// render the table. Hole cards are redacted for everyone but the viewer
// until a showdown reveal.
type Snapshot struct {
	Phase             Phase             `json:"phase"`
	HandNumber        int               `json:"handNumber"`
	Community         deck.Hand         `json:"community"`
	Pot               int               `json:"pot"`
	HighBet           int               `json:"highBet"`
	MinBet            int               `json:"minBet"`
	ActivePlayerIndex int               `json:"activePlayerIndex"`
	Players           []*PlayerSnapshot `json:"players"`
	Winner            *Result           `json:"winner,omitempty"`
}

// Snapshot returns the game state as seen by the given viewer. A viewer id
// of 0 produces a fully redacted spectator view.
func (g *Game) Snapshot(viewerID int64) *Snapshot {
	activeIndex := -1
	if g.phase.IsBetting() {
		activeIndex = g.activeIndex
	}

	reveal := g.phase == PhaseShowdown && g.result != nil && g.result.Reason == ReasonShowdown

	players := make([]*PlayerSnapshot, len(g.players))
	for i, p := range g.players {
		ps := &PlayerSnapshot{
			ID:       p.id,
			Name:     p.name,
			Chips:    p.chips,
			Bet:      p.currentBet,
			RoundBet: p.roundBet,
			Folded:   p.folded,
			AllIn:    p.allIn(),
			IsDealer: p.isDealer,
			IsActive: i == activeIndex,
		}

		if p.id == viewerID || (reveal && p.live()) {
			ps.Hand = p.hand.Clone()

			if len(p.hand) == 2 {
				cards := append(p.hand.Clone(), g.community...)
				ps.HandLabel = poker.NewHandAnalyzer(cards).GetHand().String()
			}
		}

		players[i] = ps
	}

	return &Snapshot{
		Phase:             g.phase,
		HandNumber:        g.handNumber,
		Community:         g.community.Clone(),
		Pot:               g.pot,
		HighBet:           g.highBet,
		MinBet:            g.options.BigBlind,
		ActivePlayerIndex: activeIndex,
		Players:           players,
		Winner:            g.result,
	}
}
