package poker

import "headsupholdem-server/pkg/deck"

// bestStraight returns the high card of the best straight found in the
// distinct ranks, or 0 if there is none. The ranks may contain duplicates
// (suit-restricted lists never do); they must be sorted descending.
// The wheel (A-2-3-4-5) is the one straight where the ace plays low.
func bestStraight(ranks []int) int {
	present := make(map[int]bool, len(ranks))
	for _, rank := range ranks {
		present[rank] = true

		if rank == deck.Ace {
			present[deck.LowAce] = true
		}
	}

	for high := deck.Ace; high >= 5; high-- {
		run := true
		for r := high; r > high-5; r-- {
			if !present[r] {
				run = false
				break
			}
		}

		if run {
			return high
		}
	}

	return 0
}
