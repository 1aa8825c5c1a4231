package bot

import (
	"headsupholdem-server/pkg/deck"
	"headsupholdem-server/pkg/poker"
)

// tier classifies hand strength. It is a closed set so the params dispatch
// below stays exhaustiveness-checkable.
type tier int

const (
	tierTrash tier = iota
	tierWeak
	tierMedium
	tierStrong
	tierMonster
)

func (t tier) String() string {
	switch t {
	case tierTrash:
		return "trash"
	case tierWeak:
		return "weak"
	case tierMedium:
		return "medium"
	case tierStrong:
		return "strong"
	case tierMonster:
		return "monster"
	}

	return ""
}

// tierParams tunes the policy per strength tier.
// callThreshold is the largest fraction of the pot the policy will risk on a
// call; raiseProb is the chance it raises when it can; raise sizes are drawn
// uniformly between raiseMin and raiseMax as fractions of the pot.
type tierParams struct {
	callThreshold float64
	raiseProb     float64
	raiseMin      float64
	raiseMax      float64
}

func (t tier) params() tierParams {
	switch t {
	case tierTrash:
		return tierParams{callThreshold: 0.05, raiseProb: 0}
	case tierWeak:
		return tierParams{callThreshold: 0.15, raiseProb: 0.05, raiseMin: 0.25, raiseMax: 0.5}
	case tierMedium:
		return tierParams{callThreshold: 0.3, raiseProb: 0.2, raiseMin: 0.25, raiseMax: 0.75}
	case tierStrong:
		return tierParams{callThreshold: 0.5, raiseProb: 0.5, raiseMin: 0.5, raiseMax: 1}
	case tierMonster:
		return tierParams{callThreshold: 1, raiseProb: 0.8, raiseMin: 0.5, raiseMax: 1.5}
	}

	panic("unknown tier")
}

// preFlopTier grades two hole cards on rank and suitedness
func preFlopTier(hole deck.Hand) tier {
	if len(hole) != 2 {
		return tierTrash
	}

	high, low := hole[0].Rank, hole[1].Rank
	if low > high {
		high, low = low, high
	}

	suited := hole[0].Suit == hole[1].Suit

	if high == low {
		switch {
		case high >= deck.Queen:
			return tierMonster
		case high >= 8:
			return tierStrong
		default:
			return tierMedium
		}
	}

	switch {
	case high == deck.Ace && low >= deck.Jack:
		return tierStrong
	case high >= deck.Queen && low >= 10 && suited:
		return tierStrong
	case high >= deck.Jack && low >= 10:
		return tierMedium
	case suited && high-low <= 2 && low >= 5:
		return tierMedium
	case high >= deck.King:
		return tierWeak
	default:
		return tierTrash
	}
}

// postFlopTier grades the made hand against the board
func postFlopTier(hole deck.Hand, community deck.Hand) tier {
	cards := append(hole.Clone(), community...)

	switch poker.NewHandAnalyzer(cards).GetHand() {
	case poker.StraightFlush, poker.FourOfAKind, poker.FullHouse, poker.Flush, poker.Straight:
		return tierMonster
	case poker.ThreeOfAKind, poker.TwoPair:
		return tierStrong
	case poker.OnePair:
		return tierMedium
	default:
		return tierWeak
	}
}
