package kuhn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEncoding(t *testing.T) {
	s := mustDeal(t, 0, [2]Card{Queen, King})
	s = mustStep(t, s, Bet)

	// P0 holds the queen and has one chip in.
	obs := Observe(s, 0)
	assert.Equal(t, [ObservationSize]bool{
		false, true, false, // card: Q
		false, true, // own chips: 1
		true, false, // opponent chips: 0
	}, obs)

	// P1 holds the king and has nothing in yet.
	obs = Observe(s, 1)
	assert.Equal(t, [ObservationSize]bool{
		false, false, true, // card: K
		true, false, // own chips: 0
		false, true, // opponent chips: 1
	}, obs)
}

func TestObserveHidesOpponentCard(t *testing.T) {
	// Fix P0's card and vary P1's: P0's observation must not change at
	// any point in any line of play.
	base := mustDeal(t, 0, [2]Card{Queen, Jack})
	other := mustDeal(t, 0, [2]Card{Queen, King})

	var walk func(a, b State)
	walk = func(a, b State) {
		assert.Equal(t, Observe(a, 0), Observe(b, 0))
		if a.Terminated {
			return
		}
		require.Equal(t, a.LegalActionList(), b.LegalActionList())
		for _, act := range a.LegalActionList() {
			walk(mustStep(t, a, act), mustStep(t, b, act))
		}
	}
	walk(base, other)
}

func TestLegalActionList(t *testing.T) {
	s := mustDeal(t, 0, [2]Card{Jack, Queen})
	assert.Equal(t, []Action{Bet, Check}, s.LegalActionList())

	s = mustStep(t, s, Bet)
	assert.Equal(t, []Action{Call, Fold}, s.LegalActionList())

	s = mustStep(t, s, Fold)
	assert.Empty(t, s.LegalActionList())
}

func TestActionStringRoundTrip(t *testing.T) {
	for a := Action(0); a < NumActions; a++ {
		parsed, ok := ActionFromString(a.String())
		require.True(t, ok)
		assert.Equal(t, a, parsed)
	}

	_, ok := ActionFromString("raise")
	assert.False(t, ok)
}
