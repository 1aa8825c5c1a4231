package holdem

import "errors"

// Options configures how a heads-up match is played
type Options struct {
	// StartingChips is each player's stack at the start of the match
	StartingChips int

	// SmallBlind and BigBlind are posted at the start of every hand
	SmallBlind int
	BigBlind   int

	// BurnCard discards a card before each community deal. House convention
	// only; it has no effect on fairness.
	BurnCard bool

	// Rebuy restores a busted player to StartingChips between hands
	Rebuy bool
}

// DefaultOptions returns the default options for a heads-up match
func DefaultOptions() Options {
	return Options{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		Rebuy:         true,
	}
}

// Validate returns an error if the options cannot produce a playable match
func (o Options) Validate() error {
	return validateOptions(o)
}

func validateOptions(opts Options) error {
	if opts.StartingChips <= 0 {
		return errors.New("starting chips must be greater than zero")
	}

	if opts.SmallBlind <= 0 || opts.BigBlind <= 0 {
		return errors.New("blinds must be greater than zero")
	}

	if opts.SmallBlind > opts.BigBlind {
		return errors.New("small blind cannot exceed the big blind")
	}

	if opts.BigBlind > opts.StartingChips {
		return errors.New("big blind cannot exceed the starting chips")
	}

	return nil
}
