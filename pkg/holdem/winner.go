package holdem

import (
	"headsupholdem-server/pkg/poker"
	"headsupholdem-server/pkg/protocol"
)

// Reason explains how a hand was won
type Reason string

// constants for Reason
const (
	ReasonOpponentFolded Reason = "opponent folded"
	ReasonShowdown       Reason = "showdown"
)

// Result summarizes the outcome of a hand. It is the only data the
// presentation and settlement collaborators need.
type Result struct {
	WinnerID         int64  `json:"winnerId"`
	AmountWon        int    `json:"amountWon"`
	Reason           Reason `json:"reason"`
	WinningHandLabel string `json:"winningHandLabel,omitempty"`

	// Split is true when the pot was divided on an exact tie. WinnerID then
	// names the first seat, which also receives the odd chip.
	Split bool `json:"split,omitempty"`
}

// resolveFoldOut awards the pot to the last live player
func (g *Game) resolveFoldOut() {
	var winner *Player
	for _, p := range g.players {
		if p.live() {
			winner = p
			break
		}
	}

	winner.chips += g.pot
	g.result = &Result{
		WinnerID:  winner.id,
		AmountWon: g.pot,
		Reason:    ReasonOpponentFolded,
	}

	g.logChan <- protocol.SimpleLogMessageSlice(winner.id, "{} won %d (opponent folded)", g.pot)

	g.pot = 0
	g.phase = PhaseShowdown
}

// resolveShowdown compares the live hands against the community cards and
// moves the pot. Exact ties split the pot evenly; an indivisible chip goes to
// the first seat.
func (g *Game) resolveShowdown() {
	g.phase = PhaseShowdown

	type contender struct {
		player   *Player
		analyzer *poker.HandAnalyzer
	}

	contenders := make([]contender, 0, len(g.players))
	for _, p := range g.players {
		if !p.live() {
			continue
		}

		cards := append(p.hand.Clone(), g.community...)
		contenders = append(contenders, contender{
			player:   p,
			analyzer: poker.NewHandAnalyzer(cards),
		})
	}

	best := contenders[0]
	tied := false
	for _, c := range contenders[1:] {
		if score := c.analyzer.GetScore(); score > best.analyzer.GetScore() {
			best = c
			tied = false
		} else if score == best.analyzer.GetScore() {
			tied = true
		}
	}

	if tied {
		share := g.pot / len(contenders)
		remainder := g.pot - share*len(contenders)

		logs := make([]*protocol.LogMessage, 0, len(contenders))
		for _, c := range contenders {
			c.player.chips += share
			logs = append(logs, protocol.SimpleLogMessage(c.player.ID(), "{} split the pot and won %d with a %s", share, c.analyzer.GetHand()))
		}

		first := g.players[0]
		first.chips += remainder

		g.result = &Result{
			WinnerID:         first.id,
			AmountWon:        share + remainder,
			Reason:           ReasonShowdown,
			WinningHandLabel: best.analyzer.GetHand().String(),
			Split:            true,
		}

		g.logChan <- logs
		g.pot = 0
		return
	}

	best.player.chips += g.pot
	g.result = &Result{
		WinnerID:         best.player.id,
		AmountWon:        g.pot,
		Reason:           ReasonShowdown,
		WinningHandLabel: best.analyzer.GetHand().String(),
	}

	g.logChan <- protocol.SimpleLogMessageSlice(best.player.id, "{} won %d with a %s", g.pot, best.analyzer.GetHand())
	g.pot = 0
}
