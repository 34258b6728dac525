package kuhn

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrIllegalAction is returned by Step when the submitted action is not
// permitted by the current legal-action mask. It indicates a bug in the
// caller, not a recoverable game condition.
var ErrIllegalAction = errors.New("kuhn: action not legal in current state")

// deals enumerates the six equally likely ordered deals of two distinct
// cards from the three-card deck.
var deals = [6][2]Card{
	{Jack, Queen}, {Jack, King},
	{Queen, Jack}, {Queen, King},
	{King, Jack}, {King, Queen},
}

// openingMask is the legal-action mask at the start of a betting round:
// no bet is outstanding, so only Bet and Check are available.
var openingMask = [NumActions]bool{Bet: true, Check: true}

// NewGame deals a fresh hand: the first player is chosen by fair coin
// and the ordered deal uniformly among the six possibilities.
func NewGame(rng *rand.Rand) State {
	s, _ := Deal(rng.IntN(2), deals[rng.IntN(len(deals))])
	return s
}

// Deal constructs the initial state for a known seating and deal. It is
// the deterministic counterpart of NewGame, used by solvers and tests
// that enumerate deals exhaustively.
func Deal(firstPlayer int, cards [2]Card) (State, error) {
	if firstPlayer != 0 && firstPlayer != 1 {
		return State{}, fmt.Errorf("kuhn: invalid first player %d", firstPlayer)
	}
	if cards[0] == cards[1] {
		return State{}, fmt.Errorf("kuhn: cards must be distinct, got %s %s", cards[0], cards[1])
	}
	for _, c := range cards {
		if c < Jack || c > King {
			return State{}, fmt.Errorf("kuhn: invalid card %d", c)
		}
	}
	return State{
		CurrentPlayer: firstPlayer,
		Cards:         cards,
		LastAction:    NoAction,
		LegalActions:  openingMask,
	}, nil
}

// Step applies one action and returns the resulting state. The input
// state is not modified. Submitting an action outside the current
// legal-action mask returns ErrIllegalAction.
func Step(s State, action Action) (State, error) {
	if s.Terminated {
		return State{}, fmt.Errorf("%w: hand is over", ErrIllegalAction)
	}
	if !s.Legal(action) {
		return State{}, fmt.Errorf("%w: %s", ErrIllegalAction, action)
	}

	next := s
	actor := s.CurrentPlayer

	if action == Bet || action == Call {
		next.Pot[actor]++
	}

	switch {
	case action == Fold:
		// The folding player forfeits one unit regardless of cards.
		next.Terminated = true
		next.Rewards[actor] = -1
		next.Rewards[1-actor] = 1
	case s.LastAction == Bet && action == Call:
		// Showdown after a bet and call: two units change hands.
		next.Terminated = true
		next.Rewards = showdownRewards(s, 2)
	case s.LastAction == Check && action == Check:
		// Checked-down showdown: one unit changes hands.
		next.Terminated = true
		next.Rewards = showdownRewards(s, 1)
	}

	next.CurrentPlayer = 1 - actor
	next.LastAction = action
	next.LegalActions = maskAfter(action)
	return next, nil
}

// maskAfter gives the legal-action mask for the player to act after the
// given move. Call and Fold end the hand, a Bet must be answered with
// Call or Fold, and a Check leaves the round open.
func maskAfter(action Action) [NumActions]bool {
	switch action {
	case Bet:
		return [NumActions]bool{Call: true, Fold: true}
	case Check:
		return openingMask
	default:
		return [NumActions]bool{}
	}
}

// showdownRewards compares the two hole cards and awards the given
// magnitude to the holder of the higher rank. Deals never contain a
// tie.
func showdownRewards(s State, magnitude float64) [2]float64 {
	winner := 0
	if s.Cards[1].Beats(s.Cards[0]) {
		winner = 1
	}
	var r [2]float64
	r[winner] = magnitude
	r[1-winner] = -magnitude
	return r
}
