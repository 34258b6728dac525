package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// Policy is a trained average strategy: per information set, a
// probability for each action that was available there. It satisfies
// the bot package's Strategy interface.
type Policy map[string]map[kuhn.Action]float64

// ActionProbs returns the mixed strategy for the given card and public
// history, or nil when the information set was never visited.
func (p Policy) ActionProbs(card kuhn.Card, history []kuhn.Action) map[kuhn.Action]float64 {
	return p[InfoSetKey(card, history)]
}

// String renders the policy sorted by information set, one line each.
func (p Policy) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		probs := p[key]
		actions := make([]kuhn.Action, 0, len(probs))
		for a := range probs {
			actions = append(actions, a)
		}
		sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

		parts := make([]string, 0, len(actions))
		for _, a := range actions {
			parts = append(parts, fmt.Sprintf("%s=%.3f", a, probs[a]))
		}
		fmt.Fprintf(&b, "%-6s %s\n", key, strings.Join(parts, " "))
	}
	return b.String()
}
