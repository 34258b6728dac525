package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyStatistics(t *testing.T) {
	s := &Statistics{}
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.NoError(t, s.Validate())
}

func TestMeanAndVariance(t *testing.T) {
	s := &Statistics{}
	for _, net := range []float64{1, -1, 2, -2} {
		s.Add(HandResult{Net: net, Showdown: true})
	}

	assert.Equal(t, 4, s.Hands)
	assert.InDelta(t, 0.0, s.Mean(), 1e-9)
	assert.InDelta(t, 10.0/3.0, s.Variance(), 1e-9)
	require.NoError(t, s.Validate())
}

func TestShowdownFoldSplit(t *testing.T) {
	s := &Statistics{}
	s.Add(HandResult{Net: 2, Showdown: true})
	s.Add(HandResult{Net: 1, Showdown: false})
	s.Add(HandResult{Net: -1, Showdown: false})

	assert.Equal(t, 1, s.ShowdownHands)
	assert.Equal(t, 2, s.FoldHands)
}

func TestSeatMeans(t *testing.T) {
	s := &Statistics{}
	s.Add(HandResult{Net: 1, Seat: 0})
	s.Add(HandResult{Net: 3, Seat: 0})
	s.Add(HandResult{Net: -2, Seat: 1})

	assert.InDelta(t, 2.0, s.SeatMean(0), 1e-9)
	assert.InDelta(t, -2.0, s.SeatMean(1), 1e-9)
}

func TestConfidenceIntervalBracketsMean(t *testing.T) {
	s := &Statistics{}
	for i := 0; i < 100; i++ {
		net := 1.0
		if i%2 == 0 {
			net = -1.0
		}
		s.Add(HandResult{Net: net})
	}

	low, high := s.ConfidenceInterval95()
	assert.Less(t, low, s.Mean())
	assert.Greater(t, high, s.Mean())
}

func TestPercentile(t *testing.T) {
	s := &Statistics{}
	for _, net := range []float64{-2, -1, 1, 2} {
		s.Add(HandResult{Net: net})
	}

	assert.Equal(t, -2.0, s.Percentile(0))
	assert.Equal(t, 2.0, s.Percentile(1))
}

func TestValidateCatchesInconsistency(t *testing.T) {
	s := &Statistics{}
	s.Add(HandResult{Net: 1})
	s.Hands = 5
	assert.Error(t, s.Validate())
}
