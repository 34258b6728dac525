// Package statistics aggregates per-hand simulation results.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult represents the outcome of a single hand from the hero's
// perspective.
type HandResult struct {
	Net      float64 // chips won or lost by the hero
	Seed     int64   // RNG seed for this hand, for replay
	Seat     int     // hero's seat (0 or 1)
	Showdown bool    // whether the hand reached a showdown
}

// SeatStats tracks results for one seat assignment.
type SeatStats struct {
	Hands int
	Sum   float64
}

// Statistics tracks aggregate simulation results.
type Statistics struct {
	Hands  int
	Sum    float64
	Sum2   float64   // sum of squares for variance
	Values []float64 // retained for percentile queries

	ShowdownHands int
	FoldHands     int
	SeatResults   [2]SeatStats
}

// Add records one hand result.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.Sum += r.Net
	s.Sum2 += r.Net * r.Net
	s.Values = append(s.Values, r.Net)

	if r.Showdown {
		s.ShowdownHands++
	} else {
		s.FoldHands++
	}

	s.SeatResults[r.Seat].Hands++
	s.SeatResults[r.Seat].Sum += r.Net
}

// Mean returns the arithmetic mean in chips per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	n := float64(s.Hands)
	return (s.Sum2 - s.Sum*s.Sum/n) / (n - 1)
}

// StdDev returns the sample standard deviation.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the
// mean.
func (s *Statistics) ConfidenceInterval95() (low, high float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Percentile returns the p-th percentile (0 < p < 1) of hand results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.Values...)
	sort.Float64s(sorted)
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// SeatMean returns the mean result for hands played from the given
// seat.
func (s *Statistics) SeatMean(seat int) float64 {
	st := s.SeatResults[seat]
	if st.Hands == 0 {
		return 0
	}
	return st.Sum / float64(st.Hands)
}

// Validate checks internal consistency of the accumulated counters.
func (s *Statistics) Validate() error {
	if s.Hands != len(s.Values) {
		return fmt.Errorf("hand count %d does not match %d recorded values", s.Hands, len(s.Values))
	}
	if s.ShowdownHands+s.FoldHands != s.Hands {
		return fmt.Errorf("showdown (%d) + fold (%d) hands do not sum to %d", s.ShowdownHands, s.FoldHands, s.Hands)
	}
	if s.SeatResults[0].Hands+s.SeatResults[1].Hands != s.Hands {
		return fmt.Errorf("per-seat hand counts do not sum to %d", s.Hands)
	}
	return nil
}
