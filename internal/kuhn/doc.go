// Package kuhn implements the rules of two-player Kuhn poker.
//
// The engine is a set of pure functions over an immutable State value:
// NewGame deals a hand, Step advances it by one action, and Observe
// projects the partial view a single player is allowed to see. There is
// no internal mutation, no I/O, and no concurrency; callers may drive
// any number of independent games from any number of goroutines.
package kuhn
