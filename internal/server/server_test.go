package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/lox/kuhnforbots/internal/bot"
	"github.com/lox/kuhnforbots/internal/client"
	"github.com/lox/kuhnforbots/internal/protocol"
)

func startTestServer(t *testing.T, hands int) string {
	t.Helper()
	config := DefaultConfig()
	config.Session.Hands = hands
	config.Session.Seed = 17

	srv := NewServer(config, log.New(io.Discard), quartz.NewReal())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(DefaultConfig(), log.New(io.Discard), quartz.NewReal())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTwoBotsPlayAFullSession(t *testing.T) {
	url := startTestServer(t, 5)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := log.New(io.Discard)
	results := make([]*protocol.SessionResultData, 2)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := client.New(url, "alice", bot.RandomAgent{}, 1, logger).Run(gctx)
		results[0] = result
		return err
	})
	g.Go(func() error {
		result, err := client.New(url, "bob", bot.CallingAgent{}, 2, logger).Run(gctx)
		results[1] = result
		return err
	})
	require.NoError(t, g.Wait())

	for _, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, 5, result.Hands)
		assert.Zero(t, result.Totals[0]+result.Totals[1])
		assert.ElementsMatch(t, []string{"alice", "bob"}, result.Names[:])
	}
	assert.Equal(t, results[0].Totals, results[1].Totals)
}
