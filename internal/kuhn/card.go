package kuhn

// Card represents a rank from the three-card Kuhn deck.
type Card int8

const (
	Jack Card = iota
	Queen
	King
)

// NumCards is the size of the deck.
const NumCards = 3

// String returns the string representation of a card.
func (c Card) String() string {
	switch c {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// CardFromString converts a string to a Card. The second return value
// reports whether the string named a valid card.
func CardFromString(s string) (Card, bool) {
	switch s {
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	default:
		return 0, false
	}
}

// Beats reports whether c outranks other at showdown. Dealt cards are
// always distinct, so showdowns are strictly decided.
func (c Card) Beats(other Card) bool {
	return c > other
}
