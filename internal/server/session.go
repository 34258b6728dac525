package server

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/kuhnforbots/internal/kuhn"
	"github.com/lox/kuhnforbots/internal/protocol"
	"github.com/lox/kuhnforbots/internal/randutil"
)

// errDisconnected aborts a session when one of the bots drops.
var errDisconnected = errors.New("player disconnected")

// session runs a fixed number of hands between two connected bots.
// The player at index i always occupies seat i; fairness comes from the
// engine's random choice of first actor each hand.
type session struct {
	players [2]*player
	hands   int
	seed    int64
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger

	totals [2]float64
}

func newSession(p0, p1 *player, settings *SessionSettings, clock quartz.Clock, logger *log.Logger) *session {
	return &session{
		players: [2]*player{p0, p1},
		hands:   settings.Hands,
		seed:    settings.Seed,
		timeout: time.Duration(settings.ActionTimeoutSeconds) * time.Second,
		clock:   clock,
		logger:  logger.WithPrefix("session"),
	}
}

// run plays the configured hands and reports the final score. It
// returns early if either player disconnects.
func (s *session) run() error {
	defer s.players[0].close()
	defer s.players[1].close()

	s.logger.Info("session starting",
		"players", fmt.Sprintf("%s vs %s", s.players[0].name, s.players[1].name),
		"hands", s.hands, "seed", s.seed)

	rng := randutil.New(s.seed)
	for handID := 1; handID <= s.hands; handID++ {
		if err := s.playHand(handID, rng); err != nil {
			s.logger.Warn("session aborted", "hand", handID, "error", err)
			return err
		}
	}

	result := protocol.SessionResultData{
		Hands:  s.hands,
		Totals: s.totals,
		Names:  [2]string{s.players[0].name, s.players[1].name},
	}
	s.broadcast(protocol.TypeSessionResult, result)
	s.logger.Info("session complete", "totals", s.totals)
	return nil
}

// playHand deals and drives one hand to completion.
func (s *session) playHand(handID int, rng *rand.Rand) error {
	state := kuhn.NewGame(rng)

	for seat, p := range s.players {
		err := p.send(protocol.TypeHandStart, protocol.HandStartData{
			HandID:     handID,
			Seat:       seat,
			Card:       state.Cards[seat].String(),
			FirstToAct: state.CurrentPlayer,
		})
		if err != nil {
			return fmt.Errorf("%w: %s", errDisconnected, p.name)
		}
	}

	var history []kuhn.Action
	for !state.Terminated {
		seat := state.CurrentPlayer
		action, err := s.requestAction(s.players[seat], handID, state, history)
		if err != nil {
			return err
		}

		next, err := kuhn.Step(state, action)
		if err != nil {
			// requestAction only hands back masked actions.
			return err
		}
		history = append(history, action)
		state = next

		s.broadcast(protocol.TypePlayerAction, protocol.PlayerActionData{
			HandID: handID,
			Seat:   seat,
			Action: action.String(),
		})
	}

	showdown := history[len(history)-1] != kuhn.Fold
	result := protocol.HandResultData{
		HandID:   handID,
		Rewards:  state.Rewards,
		Showdown: showdown,
	}
	if showdown {
		// Cards are revealed only when the rules reveal them.
		result.Cards = []string{state.Cards[0].String(), state.Cards[1].String()}
	}
	s.broadcast(protocol.TypeHandResult, result)

	s.totals[0] += state.Rewards[0]
	s.totals[1] += state.Rewards[1]
	return nil
}

// requestAction asks the seat's bot for a move and enforces the action
// timeout. Timeouts and out-of-mask responses are replaced with the
// default action rather than ending the session.
func (s *session) requestAction(p *player, handID int, state kuhn.State, history []kuhn.Action) (kuhn.Action, error) {
	p.drainActions()

	legal := state.LegalActionList()
	historyStrs := make([]string, len(history))
	for i, a := range history {
		historyStrs[i] = a.String()
	}
	legalStrs := make([]string, len(legal))
	for i, a := range legal {
		legalStrs[i] = a.String()
	}

	// The timer must exist before the request goes out so a mocked
	// clock can always find it.
	timer := s.clock.NewTimer(s.timeout)
	defer timer.Stop()

	err := p.send(protocol.TypeActionRequest, protocol.ActionRequestData{
		HandID:         handID,
		History:        historyStrs,
		LegalActions:   legalStrs,
		TimeoutSeconds: int(s.timeout / time.Second),
	})
	if err != nil {
		return kuhn.NoAction, fmt.Errorf("%w: %s", errDisconnected, p.name)
	}

	select {
	case response := <-p.actions:
		if response.HandID != handID {
			p.sendError("stale_hand", fmt.Sprintf("response for hand %d during hand %d", response.HandID, handID))
			return defaultAction(state), nil
		}
		action, ok := kuhn.ActionFromString(response.Action)
		if !ok || !state.Legal(action) {
			p.sendError("illegal_action", fmt.Sprintf("%q is not legal here", response.Action))
			s.logger.Warn("illegal action from player", "player", p.name, "action", response.Action)
			return defaultAction(state), nil
		}
		return action, nil
	case <-timer.C:
		p.sendError("timeout", "no action received in time")
		s.logger.Warn("action timeout", "player", p.name, "hand", handID)
		return defaultAction(state), nil
	case <-p.done:
		return kuhn.NoAction, fmt.Errorf("%w: %s", errDisconnected, p.name)
	}
}

// defaultAction stands in for a missing or illegal response: check when
// possible, otherwise fold.
func defaultAction(state kuhn.State) kuhn.Action {
	if state.Legal(kuhn.Check) {
		return kuhn.Check
	}
	return kuhn.Fold
}

// broadcast sends a message to both players, ignoring write failures;
// a dropped connection surfaces on the next request instead.
func (s *session) broadcast(messageType protocol.MessageType, data any) {
	for _, p := range s.players {
		if err := p.send(messageType, data); err != nil {
			s.logger.Debug("broadcast failed", "player", p.name, "error", err)
		}
	}
}
