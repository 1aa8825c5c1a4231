// Package bot implements the CPU opponent as a pure decision function over a
// game snapshot. It keeps no state between calls, so it can be swapped out or
// tested in isolation.
package bot

import (
	"headsupholdem-server/internal/rng"
	"headsupholdem-server/pkg/holdem"
)

// Policy proposes actions for a CPU-controlled seat. Strength is bucketed
// into tiers and looked up in a fixed threshold table; only the randomness
// source is injectable.
type Policy struct {
	rng rng.Generator
}

// New returns a policy using the provided random source.
// Pass nil to use crypto randomness.
func New(generator rng.Generator) *Policy {
	if generator == nil {
		generator = rng.Crypto{}
	}

	return &Policy{rng: generator}
}

// Decide proposes an action for the given player based on the snapshot.
// The snapshot must be the player's own view (hole cards included).
func (p *Policy) Decide(view *holdem.Snapshot, playerID int64) holdem.Action {
	var me *holdem.PlayerSnapshot
	for _, ps := range view.Players {
		if ps.ID == playerID {
			me = ps
			break
		}
	}

	if me == nil || len(me.Hand) != 2 || me.Chips == 0 {
		return holdem.Check()
	}

	var strength tier
	if len(view.Community) == 0 {
		strength = preFlopTier(me.Hand)
	} else {
		strength = postFlopTier(me.Hand, view.Community)
	}

	params := strength.params()
	toCall := view.HighBet - me.RoundBet

	if toCall <= 0 {
		if p.chance(params.raiseProb) {
			return holdem.Bet(p.betSize(view, me, params))
		}

		return holdem.Check()
	}

	if toCall > me.Chips {
		toCall = me.Chips
	}

	// pot odds: what fraction of the resulting pot are we putting at risk?
	risk := float64(toCall) / float64(view.Pot+toCall)
	if risk > params.callThreshold {
		return holdem.Fold()
	}

	if toCall < me.Chips && p.chance(params.raiseProb) {
		raise := toCall + p.sizeFromPot(view.Pot+toCall, params)
		if raise > me.Chips {
			raise = me.Chips
		}

		return holdem.Bet(raise)
	}

	return holdem.Bet(toCall)
}

// chance returns true with probability prob
func (p *Policy) chance(prob float64) bool {
	if prob <= 0 {
		return false
	}

	return p.rng.Intn(100) < int(prob*100)
}

// betSize picks an opening bet between the minimum bet and the stack
func (p *Policy) betSize(view *holdem.Snapshot, me *holdem.PlayerSnapshot, params tierParams) int {
	pot := view.Pot
	if pot == 0 {
		pot = view.MinBet * 2
	}

	amount := p.sizeFromPot(pot, params)
	if amount < view.MinBet {
		amount = view.MinBet
	}

	if amount > me.Chips {
		amount = me.Chips
	}

	return amount
}

// sizeFromPot draws a size uniformly between raiseMin and raiseMax fractions
// of the pot
func (p *Policy) sizeFromPot(pot int, params tierParams) int {
	spread := params.raiseMax - params.raiseMin
	fraction := params.raiseMin
	if spread > 0 {
		fraction += spread * float64(p.rng.Intn(101)) / 100
	}

	amount := int(float64(pot) * fraction)
	if amount < 1 {
		amount = 1
	}

	return amount
}
