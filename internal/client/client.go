// Package client connects a local agent to a kuhnforbots server and
// plays it over the websocket protocol.
package client

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/kuhnforbots/internal/bot"
	"github.com/lox/kuhnforbots/internal/kuhn"
	"github.com/lox/kuhnforbots/internal/protocol"
	"github.com/lox/kuhnforbots/internal/randutil"
)

// Client plays one session on behalf of an agent.
type Client struct {
	url    string
	name   string
	agent  bot.Agent
	logger *log.Logger
	rng    *rand.Rand
}

// New creates a client that will connect to the given websocket URL.
func New(url, name string, agent bot.Agent, seed int64, logger *log.Logger) *Client {
	return &Client{
		url:    url,
		name:   name,
		agent:  agent,
		logger: logger.WithPrefix("client").With("name", name),
		rng:    randutil.New(seed),
	}
}

// Run connects, plays until the server reports the session result, and
// returns it.
func (c *Client) Run(ctx context.Context) (*protocol.SessionResultData, error) {
	wsConn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", c.url, err)
	}
	defer wsConn.Close()

	// Tear the connection down if the context ends first; the blocked
	// read below then returns an error.
	stop := context.AfterFunc(ctx, func() { _ = wsConn.Close() })
	defer stop()

	msg, err := protocol.NewMessage(protocol.TypeConnect, protocol.ConnectData{Name: c.name})
	if err != nil {
		return nil, err
	}
	if err := wsConn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("send connect: %w", err)
	}

	var seat int
	var card kuhn.Card

	for {
		var incoming protocol.Message
		if err := wsConn.ReadJSON(&incoming); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("read: %w", err)
		}

		switch incoming.Type {
		case protocol.TypeConnected:
			var data protocol.ConnectedData
			if err := incoming.Decode(protocol.TypeConnected, &data); err != nil {
				return nil, err
			}
			seat = data.Seat
			c.logger.Info("connected", "seat", seat)

		case protocol.TypeHandStart:
			var data protocol.HandStartData
			if err := incoming.Decode(protocol.TypeHandStart, &data); err != nil {
				return nil, err
			}
			parsed, ok := kuhn.CardFromString(data.Card)
			if !ok {
				return nil, fmt.Errorf("bad card %q in hand start", data.Card)
			}
			card = parsed
			c.logger.Debug("hand start", "hand", data.HandID, "card", data.Card)

		case protocol.TypeActionRequest:
			var data protocol.ActionRequestData
			if err := incoming.Decode(protocol.TypeActionRequest, &data); err != nil {
				return nil, err
			}
			action, err := c.chooseAction(seat, card, data)
			if err != nil {
				return nil, err
			}
			response, err := protocol.NewMessage(protocol.TypeAction, protocol.ActionData{
				HandID: data.HandID,
				Action: action.String(),
			})
			if err != nil {
				return nil, err
			}
			if err := wsConn.WriteJSON(response); err != nil {
				return nil, fmt.Errorf("send action: %w", err)
			}

		case protocol.TypeHandResult:
			var data protocol.HandResultData
			if err := incoming.Decode(protocol.TypeHandResult, &data); err != nil {
				return nil, err
			}
			c.logger.Debug("hand result", "hand", data.HandID, "net", data.Rewards[seat])

		case protocol.TypeSessionResult:
			var data protocol.SessionResultData
			if err := incoming.Decode(protocol.TypeSessionResult, &data); err != nil {
				return nil, err
			}
			c.logger.Info("session complete", "hands", data.Hands, "net", data.Totals[seat])
			return &data, nil

		case protocol.TypeError:
			var data protocol.ErrorData
			if err := incoming.Decode(protocol.TypeError, &data); err != nil {
				return nil, err
			}
			c.logger.Warn("server error", "code", data.Code, "message", data.Message)

		case protocol.TypePlayerAction:
			// Informational broadcast; the history in the next action
			// request is authoritative.

		default:
			c.logger.Warn("unexpected message type", "type", incoming.Type)
		}
	}
}

// chooseAction rebuilds the agent's view from the request and asks it
// to decide.
func (c *Client) chooseAction(seat int, card kuhn.Card, req protocol.ActionRequestData) (kuhn.Action, error) {
	history := make([]kuhn.Action, len(req.History))
	for i, s := range req.History {
		a, ok := kuhn.ActionFromString(s)
		if !ok {
			return kuhn.NoAction, fmt.Errorf("bad action %q in history", s)
		}
		history[i] = a
	}

	var legal [kuhn.NumActions]bool
	for _, s := range req.LegalActions {
		a, ok := kuhn.ActionFromString(s)
		if !ok {
			return kuhn.NoAction, fmt.Errorf("bad action %q in legal actions", s)
		}
		legal[a] = true
	}

	view := bot.View{
		Seat:    seat,
		Card:    card,
		History: history,
		Legal:   legal,
	}
	return c.agent.Act(view, c.rng), nil
}
