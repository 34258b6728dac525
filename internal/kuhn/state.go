package kuhn

// ObservationSize is the length of the per-player observation vector:
// three slots one-hot encoding the player's own card, two encoding the
// player's pot contribution (0 or 1), and two encoding the opponent's.
const ObservationSize = 7

// State is an immutable snapshot of a hand in progress. Step returns a
// fresh State for every transition; a State value is never mutated
// after construction, so copies may be retained and compared freely.
type State struct {
	// CurrentPlayer is the seat (0 or 1) of the player to act next.
	// It alternates on every transition, including the terminal one.
	CurrentPlayer int

	// Cards holds each seat's private card. The two ranks are always
	// distinct.
	Cards [2]Card

	// LastAction is the most recent move, or NoAction before the
	// first one. It disambiguates context-dependent terminal checks
	// (bet-call vs check-check).
	LastAction Action

	// Pot holds each seat's chip contribution so far.
	Pot [2]int

	// LegalActions masks the moves available to CurrentPlayer,
	// indexed by Action. All false once the hand is over.
	LegalActions [NumActions]bool

	// Terminated reports whether the hand is over.
	Terminated bool

	// Rewards holds each seat's payoff. Zero until the hand ends;
	// terminal rewards always sum to zero.
	Rewards [2]float64
}

// Legal reports whether a is available to the player to act.
func (s State) Legal(a Action) bool {
	return a >= 0 && a < NumActions && s.LegalActions[a]
}

// LegalActionList returns the legal actions in action-index order.
func (s State) LegalActionList() []Action {
	actions := make([]Action, 0, NumActions)
	for a := Action(0); a < NumActions; a++ {
		if s.LegalActions[a] {
			actions = append(actions, a)
		}
	}
	return actions
}

// Observe projects the state into the partial view visible to the given
// seat. The opponent's card is omitted entirely, not masked: the vector
// has no slot that depends on it, so two states differing only in the
// opponent's card observe identically.
func Observe(s State, player int) [ObservationSize]bool {
	var obs [ObservationSize]bool
	obs[s.Cards[player]] = true
	obs[3+s.Pot[player]] = true
	obs[5+s.Pot[1-player]] = true
	return obs
}
