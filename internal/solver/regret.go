package solver

import (
	"sort"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// RegretEntry accumulates regrets and strategy sums for one information
// set. Values are kept in slices parallel to Actions.
type RegretEntry struct {
	Actions     []kuhn.Action
	RegretSum   []float64
	StrategySum []float64
}

func newRegretEntry(actions []kuhn.Action) *RegretEntry {
	return &RegretEntry{
		Actions:     append([]kuhn.Action(nil), actions...),
		RegretSum:   make([]float64, len(actions)),
		StrategySum: make([]float64, len(actions)),
	}
}

// Strategy returns the current regret-matching distribution: positive
// regrets normalised, or uniform when no action has positive regret.
func (e *RegretEntry) Strategy() []float64 {
	strat := make([]float64, len(e.RegretSum))
	total := 0.0
	for i, r := range e.RegretSum {
		if r > 0 {
			strat[i] = r
			total += r
		}
	}
	if total <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i := range strat {
		strat[i] /= total
	}
	return strat
}

// Update accumulates regrets and the reach-weighted strategy for later
// averaging.
func (e *RegretEntry) Update(regret, strategy []float64, reachWeight float64) {
	for i := range regret {
		e.RegretSum[i] += regret[i]
		e.StrategySum[i] += reachWeight * strategy[i]
	}
}

// AverageStrategy returns the normalised average strategy, which is
// what converges to equilibrium (the instantaneous strategy does not).
func (e *RegretEntry) AverageStrategy() []float64 {
	strat := make([]float64, len(e.StrategySum))
	total := 0.0
	for _, s := range e.StrategySum {
		total += s
	}
	if total <= 0 {
		v := 1.0 / float64(len(strat))
		for i := range strat {
			strat[i] = v
		}
		return strat
	}
	for i, s := range e.StrategySum {
		strat[i] = s / total
	}
	return strat
}

// RegretTable maintains entries keyed by information set. Kuhn poker
// has twelve information sets, so a plain map suffices; no sharding or
// locking is needed for a single-threaded exact traversal.
type RegretTable struct {
	entries map[string]*RegretEntry
}

// NewRegretTable returns an empty regret table ready for use.
func NewRegretTable() *RegretTable {
	return &RegretTable{entries: make(map[string]*RegretEntry)}
}

// Get returns the entry for the given key, creating it if missing.
func (t *RegretTable) Get(key string, actions []kuhn.Action) *RegretEntry {
	entry, ok := t.entries[key]
	if !ok {
		entry = newRegretEntry(actions)
		t.entries[key] = entry
	}
	return entry
}

// Size returns the number of information sets tracked.
func (t *RegretTable) Size() int {
	return len(t.entries)
}

// Keys returns the tracked information-set keys in sorted order.
func (t *RegretTable) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
