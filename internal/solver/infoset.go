// Package solver computes an approximate Nash equilibrium for Kuhn
// poker with vanilla counterfactual-regret minimization. The game tree
// is small enough to traverse exactly, so no sampling or abstraction is
// applied.
package solver

import (
	"strings"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// actionLetters encodes actions compactly for information-set keys:
// call, bet, fold, check.
var actionLetters = [kuhn.NumActions]byte{'c', 'b', 'f', 'k'}

// InfoSetKey identifies the situation a player experiences: their own
// card plus the public action history. Both players' views of the same
// betting line with the same card collapse to the same key, which is
// what makes the learned strategy seat-independent.
func InfoSetKey(card kuhn.Card, history []kuhn.Action) string {
	var b strings.Builder
	b.Grow(len(history) + 2)
	b.WriteString(card.String())
	b.WriteByte(':')
	for _, a := range history {
		b.WriteByte(actionLetters[a])
	}
	return b.String()
}
