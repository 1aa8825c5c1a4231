package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionTypeFromString(t *testing.T) {
	a := assert.New(t)

	at, err := ActionTypeFromString("check")
	a.NoError(err)
	a.Equal(ActionCheck, at)

	at, err = ActionTypeFromString("bet")
	a.NoError(err)
	a.Equal(ActionBet, at)

	at, err = ActionTypeFromString("fold")
	a.NoError(err)
	a.Equal(ActionFold, at)

	_, err = ActionTypeFromString("raise")
	a.EqualError(err, "raise is not a valid action")
}

func TestAction_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("check", Check().String())
	a.Equal("fold", Fold().String())
	a.Equal("bet 50", Bet(50).String())
}
