// Package settlement is the boundary to whatever system tracks real balances.
// The engine reports session starts and final chip allocations here and moves
// on; settlement problems never block or roll back a match.
package settlement

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Participant is a seat entering a settlement session
type Participant struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	BuyIn    int    `json:"buyIn"`
}

// Allocation is a seat's chip count at a settlement point
type Allocation struct {
	PlayerID int64 `json:"playerId"`
	Chips    int   `json:"chips"`
}

// Settler records the start of a match and the chip allocations after each
// resolved hand. Implementations must be safe for concurrent use; calls come
// from per-match run loops.
type Settler interface {
	OpenSession(ctx context.Context, matchID string, participants []Participant) error
	Settle(ctx context.Context, matchID string, allocations []Allocation) error
}

// LogSettler is the default Settler. It writes the session events to the log
// and settles nothing.
type LogSettler struct{}

var _ Settler = LogSettler{}

// OpenSession logs the start of a session
func (LogSettler) OpenSession(_ context.Context, matchID string, participants []Participant) error {
	logrus.WithFields(logrus.Fields{
		"matchID":      matchID,
		"participants": participants,
	}).Info("settlement session opened")

	return nil
}

// Settle logs the allocations
func (LogSettler) Settle(_ context.Context, matchID string, allocations []Allocation) error {
	logrus.WithFields(logrus.Fields{
		"matchID":     matchID,
		"allocations": allocations,
	}).Info("settlement recorded")

	return nil
}
