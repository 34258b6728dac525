package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kuhnforbots/internal/protocol"
)

// fakeConn is an in-memory conn for driving sessions without a network.
type fakeConn struct {
	in        chan []byte // frames for the server to read
	out       chan []byte // frames written by the server
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte, 16),
		out:    make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadJSON(v any) error {
	select {
	case frame := <-c.in:
		return json.Unmarshal(frame, v)
	case <-c.closed:
		return io.EOF
	}
}

func (c *fakeConn) WriteJSON(v any) error {
	frame, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}
	select {
	case c.out <- frame:
		return nil
	case <-c.closed:
		return net.ErrClosed
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// respond injects a client action frame.
func (c *fakeConn) respond(t *testing.T, handID int, action string) {
	t.Helper()
	msg, err := protocol.NewMessage(protocol.TypeAction, protocol.ActionData{
		HandID: handID,
		Action: action,
	})
	require.NoError(t, err)
	frame, err := json.Marshal(msg)
	require.NoError(t, err)
	c.in <- frame
}

// botScript reads server messages from a fake conn and answers action
// requests with choose (a nil choose never answers). It records hand
// and session results.
type botScript struct {
	conn     *fakeConn
	requests chan protocol.ActionRequestData
	hands    chan protocol.HandResultData
	session  chan protocol.SessionResultData
	errors   chan protocol.ErrorData
}

func runBotScript(t *testing.T, conn *fakeConn, choose func(req protocol.ActionRequestData) string) *botScript {
	t.Helper()
	b := &botScript{
		conn:     conn,
		requests: make(chan protocol.ActionRequestData, 64),
		hands:    make(chan protocol.HandResultData, 64),
		session:  make(chan protocol.SessionResultData, 1),
		errors:   make(chan protocol.ErrorData, 64),
	}
	go func() {
		for {
			var frame []byte
			select {
			case frame = <-conn.out:
			case <-conn.closed:
				// Drain frames written before the close.
				select {
				case frame = <-conn.out:
				default:
					return
				}
			}
			var msg protocol.Message
			if err := json.Unmarshal(frame, &msg); err != nil {
				return
			}
			switch msg.Type {
			case protocol.TypeActionRequest:
				var req protocol.ActionRequestData
				if err := msg.Decode(protocol.TypeActionRequest, &req); err != nil {
					return
				}
				b.requests <- req
				if choose != nil {
					if action := choose(req); action != "" {
						conn.respond(t, req.HandID, action)
					}
				}
			case protocol.TypeHandResult:
				var result protocol.HandResultData
				if err := msg.Decode(protocol.TypeHandResult, &result); err != nil {
					return
				}
				b.hands <- result
			case protocol.TypeSessionResult:
				var result protocol.SessionResultData
				if err := msg.Decode(protocol.TypeSessionResult, &result); err != nil {
					return
				}
				b.session <- result
			case protocol.TypeError:
				var errData protocol.ErrorData
				if err := msg.Decode(protocol.TypeError, &errData); err != nil {
					return
				}
				b.errors <- errData
			}
		}
	}()
	return b
}

func firstLegalChooser(req protocol.ActionRequestData) string {
	return req.LegalActions[0]
}

func testSession(settings *SessionSettings, clock quartz.Clock) (*session, *fakeConn, *fakeConn) {
	logger := log.New(io.Discard)
	c0, c1 := newFakeConn(), newFakeConn()
	p0 := newPlayer("alpha", c0, logger)
	p1 := newPlayer("beta", c1, logger)
	go p0.readPump()
	go p1.readPump()
	return newSession(p0, p1, settings, clock, logger), c0, c1
}

func TestSessionPlaysConfiguredHands(t *testing.T) {
	settings := &SessionSettings{Hands: 10, Seed: 42, ActionTimeoutSeconds: 5}
	sess, c0, c1 := testSession(settings, quartz.NewReal())

	b0 := runBotScript(t, c0, firstLegalChooser)
	b1 := runBotScript(t, c1, firstLegalChooser)

	require.NoError(t, sess.run())

	result := <-b0.session
	assert.Equal(t, 10, result.Hands)
	assert.Equal(t, [2]string{"alpha", "beta"}, result.Names)
	assert.Zero(t, result.Totals[0]+result.Totals[1], "session totals must be zero-sum")

	other := <-b1.session
	assert.Equal(t, result.Totals, other.Totals)
}

func TestSessionHandResultsAreZeroSum(t *testing.T) {
	settings := &SessionSettings{Hands: 5, Seed: 7, ActionTimeoutSeconds: 5}
	sess, c0, c1 := testSession(settings, quartz.NewReal())

	b0 := runBotScript(t, c0, firstLegalChooser)
	runBotScript(t, c1, firstLegalChooser)

	require.NoError(t, sess.run())

	for i := 0; i < 5; i++ {
		result := <-b0.hands
		assert.Zero(t, result.Rewards[0]+result.Rewards[1])
		if result.Showdown {
			assert.Len(t, result.Cards, 2)
		} else {
			assert.Empty(t, result.Cards, "fold must not reveal cards")
		}
	}
}

func TestSessionReplacesIllegalActionWithDefault(t *testing.T) {
	// Both bots always answer "bet". The opener's bet is legal; the
	// responder's is not and is replaced by the default fold.
	settings := &SessionSettings{Hands: 1, Seed: 3, ActionTimeoutSeconds: 5}
	sess, c0, c1 := testSession(settings, quartz.NewReal())

	alwaysBet := func(protocol.ActionRequestData) string { return "bet" }
	b0 := runBotScript(t, c0, alwaysBet)
	b1 := runBotScript(t, c1, alwaysBet)

	require.NoError(t, sess.run())

	result := <-b0.hands
	assert.False(t, result.Showdown)
	mag := result.Rewards[0]
	if mag < 0 {
		mag = -mag
	}
	assert.Equal(t, 1.0, mag, "fold after a bet pays one unit")

	// The session result is the last frame on each connection, so once
	// both arrive every earlier error frame has been recorded.
	<-b0.session
	<-b1.session
	errorCount := len(b0.errors) + len(b1.errors)
	assert.Equal(t, 1, errorCount, "exactly one illegal action should be reported")
}

func TestSessionTimeoutUsesDefaultAction(t *testing.T) {
	mClock := quartz.NewMock(t)
	settings := &SessionSettings{Hands: 1, Seed: 9, ActionTimeoutSeconds: 5}
	sess, c0, c1 := testSession(settings, mClock)

	// Neither bot ever answers: every request must time out, defaulting
	// to check, and the hand checks down to a showdown.
	b0 := runBotScript(t, c0, nil)
	b1 := runBotScript(t, c1, nil)

	done := make(chan error, 1)
	go func() { done <- sess.run() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := 0; i < 2; i++ {
		// The timer is armed before the request is sent, so once a
		// request shows up the mock clock has something to fire.
		select {
		case <-b0.requests:
		case <-b1.requests:
		case <-ctx.Done():
			t.Fatal("timed out waiting for action request")
		}
		mClock.Advance(5 * time.Second).MustWait(ctx)
	}

	require.NoError(t, <-done)

	select {
	case result := <-b0.hands:
		assert.True(t, result.Showdown, "two default checks end in a showdown")
	case <-ctx.Done():
		t.Fatal("timed out waiting for hand result")
	}
}

func TestSessionAbortsOnDisconnect(t *testing.T) {
	settings := &SessionSettings{Hands: 3, Seed: 1, ActionTimeoutSeconds: 5}
	sess, c0, c1 := testSession(settings, quartz.NewReal())

	// Close both connections as soon as the first request arrives.
	closer := func(protocol.ActionRequestData) string {
		c0.Close()
		c1.Close()
		return ""
	}
	runBotScript(t, c0, closer)
	runBotScript(t, c1, closer)

	err := sess.run()
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisconnected)
}
