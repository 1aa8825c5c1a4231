package poker

import (
	"sort"

	"headsupholdem-server/pkg/deck"
)

// categoryBase spaces the hand categories far enough apart that the
// category always dominates the rank component of a score.
const categoryBase = 100000

// HandAnalyzer determines the best hand the provided cards can make.
// It looks at all cards at once (2 hole + up to 5 community), so it works
// mid-hand as well as at showdown.
//
// The score it produces is category + highest relevant rank only. Two hands
// of the same category and top rank compare equal even if their kickers
// differ. That is a deliberate simplification; callers needing full kicker
// resolution must extend the score to a tuple.
type HandAnalyzer struct {
	cards []*deck.Card

	quads []int
	trips []int
	pairs []int

	flush         []int
	straight      int
	straightFlush int

	hand Hand
}

type sortByRank []*deck.Card

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// NewHandAnalyzer will return a new HandAnalyzer instance
func NewHandAnalyzer(cards []*deck.Card) *HandAnalyzer {
	newCards := make([]*deck.Card, len(cards))
	copy(newCards, cards)

	sort.Sort(sort.Reverse(sortByRank(newCards)))

	h := &HandAnalyzer{
		cards: newCards,
	}

	h.analyze()
	h.calculateHand()

	return h
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetScore returns a comparable score for the hand.
// Category dominates; within a category the highest relevant rank breaks ties.
func (h *HandAnalyzer) GetScore() int {
	return int(h.hand)*categoryBase + h.topRank()
}

func (h *HandAnalyzer) topRank() int {
	switch h.hand {
	case StraightFlush:
		return h.straightFlush
	case FourOfAKind:
		return h.quads[0]
	case FullHouse:
		return h.trips[0]
	case Flush:
		return h.flush[0]
	case Straight:
		return h.straight
	case ThreeOfAKind:
		return h.trips[0]
	case TwoPair:
		return h.pairs[0]
	case OnePair:
		return h.pairs[0]
	}

	return h.cards[0].Rank
}

// GetStraightFlush will return the best straight flush, if possible
func (h *HandAnalyzer) GetStraightFlush() (int, bool) {
	if h.straightFlush > 0 {
		return h.straightFlush, true
	}

	return 0, false
}

// GetFourOfAKind will return the best four of a kind, if possible
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) > 0 {
		return h.quads[0], true
	}

	return 0, false
}

// GetFullHouse will return the best full house, if possible
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if len(h.trips) == 0 {
		return nil, false
	}

	trips := h.trips[0]

	pair, ok := h.GetPair()
	if !ok {
		if len(h.trips) < 2 {
			return nil, false
		}

		pair = h.trips[1]
	} else if len(h.trips) >= 2 && h.trips[1] > pair {
		// with seven cards we may have two sets of trips and a separate pair.
		// make sure we grab the better pair from the trips
		pair = h.trips[1]
	}

	return []int{trips, pair}, true
}

// GetFlush will return the best possible flush, if possible
func (h *HandAnalyzer) GetFlush() ([]int, bool) {
	if h.flush != nil {
		return h.flush, true
	}

	return nil, false
}

// GetStraight will return the best straight, if possible
func (h *HandAnalyzer) GetStraight() (int, bool) {
	if h.straight > 0 {
		return h.straight, true
	}

	return 0, false
}

// GetThreeOfAKind will return the best three of a kind, if possible
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) > 0 {
		return h.trips[0], true
	}

	return 0, false
}

// GetTwoPair will return the best two pairs, if possible
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) >= 2 {
		return h.pairs[0:2], true
	}

	return nil, false
}

// GetPair will return the best pair, if possible
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) > 0 {
		return h.pairs[0], true
	}

	return 0, false
}

// GetHighCard will return the high card
func (h *HandAnalyzer) GetHighCard() (int, bool) {
	return h.cards[0].Rank, true
}

// analyze builds the rank and suit histograms and derives the combinations.
// Must be called before calculateHand()
func (h *HandAnalyzer) analyze() {
	rankCounts := make(map[int]int)
	suitRanks := make(map[deck.Suit][]int)

	// cards are sorted by rank, descending
	for _, card := range h.cards {
		rankCounts[card.Rank]++
		suitRanks[card.Suit] = append(suitRanks[card.Suit], card.Rank)
	}

	distinct := make([]int, 0, len(rankCounts))
	for rank, count := range rankCounts {
		distinct = append(distinct, rank)

		switch count {
		case 4:
			h.quads = append(h.quads, rank)
		case 3:
			h.trips = append(h.trips, rank)
		case 2:
			h.pairs = append(h.pairs, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))
	sort.Sort(sort.Reverse(sort.IntSlice(h.quads)))
	sort.Sort(sort.Reverse(sort.IntSlice(h.trips)))
	sort.Sort(sort.Reverse(sort.IntSlice(h.pairs)))

	h.straight = bestStraight(distinct)

	for _, ranks := range suitRanks {
		if len(ranks) >= 5 {
			h.flush = ranks
			h.straightFlush = bestStraight(ranks)
			break
		}
	}
}

// calculateHand will determine the best hand
// This must be called after analyze() has been called
func (h *HandAnalyzer) calculateHand() {
	if _, ok := h.GetStraightFlush(); ok {
		h.hand = StraightFlush
	} else if _, ok := h.GetFourOfAKind(); ok {
		h.hand = FourOfAKind
	} else if _, ok := h.GetFullHouse(); ok {
		h.hand = FullHouse
	} else if _, ok := h.GetFlush(); ok {
		h.hand = Flush
	} else if _, ok := h.GetStraight(); ok {
		h.hand = Straight
	} else if _, ok := h.GetThreeOfAKind(); ok {
		h.hand = ThreeOfAKind
	} else if _, ok := h.GetTwoPair(); ok {
		h.hand = TwoPair
	} else if _, ok := h.GetPair(); ok {
		h.hand = OnePair
	} else {
		h.hand = HighCard
	}
}
