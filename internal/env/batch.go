package env

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/kuhnforbots/internal/kuhn"
)

// Batch advances many independent environments in lockstep. Instances
// share nothing, so stepping them concurrently yields results identical
// to stepping each one in a loop.
type Batch struct {
	envs []*Env
}

// NewBatch creates n environments with per-instance seeds derived from
// the base seed.
func NewBatch(n int, seed int64) *Batch {
	envs := make([]*Env, n)
	for i := range envs {
		envs[i] = New(seed + int64(i))
	}
	return &Batch{envs: envs}
}

// Len returns the number of instances in the batch.
func (b *Batch) Len() int {
	return len(b.envs)
}

// ResetAll deals a new hand in every instance.
func (b *Batch) ResetAll() []kuhn.State {
	states := make([]kuhn.State, len(b.envs))
	for i, e := range b.envs {
		states[i] = e.Reset()
	}
	return states
}

// StepAll advances every non-terminal instance by one action, chosen
// per instance by the supplied callback. Instances are stepped
// concurrently; the callback must therefore be safe for concurrent use.
// The first illegal action aborts the whole batch.
func (b *Batch) StepAll(ctx context.Context, choose func(i int, s kuhn.State) kuhn.Action) error {
	g, ctx := errgroup.WithContext(ctx)
	for i, e := range b.envs {
		if e.Terminated() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := e.Step(choose(i, e.State()))
			return err
		})
	}
	return g.Wait()
}

// AllTerminated reports whether every instance has finished its hand.
func (b *Batch) AllTerminated() bool {
	for _, e := range b.envs {
		if !e.Terminated() {
			return false
		}
	}
	return true
}

// States returns a snapshot of every instance's current state.
func (b *Batch) States() []kuhn.State {
	states := make([]kuhn.State, len(b.envs))
	for i, e := range b.envs {
		states[i] = e.State()
	}
	return states
}
