package kuhn

// Action represents one of the four moves available in Kuhn poker.
type Action int8

const (
	Call Action = iota
	Bet
	Fold
	Check
)

// NoAction marks a state in which no move has been made yet.
const NoAction Action = -1

// NumActions is the size of the action space.
const NumActions = 4

// String returns the string representation of an action.
func (a Action) String() string {
	switch a {
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Fold:
		return "fold"
	case Check:
		return "check"
	case NoAction:
		return "none"
	default:
		return "unknown"
	}
}

// ActionFromString converts a string to an Action. The second return
// value reports whether the string named a valid action.
func ActionFromString(s string) (Action, bool) {
	switch s {
	case "call":
		return Call, true
	case "bet":
		return Bet, true
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	default:
		return NoAction, false
	}
}
