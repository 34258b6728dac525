package server

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/kuhnforbots/internal/protocol"
)

// conn is the subset of *websocket.Conn the server uses, abstracted so
// tests can drive sessions without a network.
type conn interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// player wraps one connected bot. A read pump goroutine forwards
// incoming action messages to the session; everything else the client
// sends while no action is pending is discarded.
type player struct {
	name   string
	conn   conn
	logger *log.Logger

	actions chan protocol.ActionData
	done    chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newPlayer(name string, c conn, logger *log.Logger) *player {
	return &player{
		name:    name,
		conn:    c,
		logger:  logger.With("player", name),
		actions: make(chan protocol.ActionData, 1),
		done:    make(chan struct{}),
	}
}

// readPump forwards action messages until the connection drops.
func (p *player) readPump() {
	defer p.close()
	for {
		var msg protocol.Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			p.logger.Debug("connection closed", "error", err)
			return
		}
		if msg.Type != protocol.TypeAction {
			p.logger.Warn("unexpected message type", "type", msg.Type)
			continue
		}
		var action protocol.ActionData
		if err := msg.Decode(protocol.TypeAction, &action); err != nil {
			p.logger.Warn("malformed action message", "error", err)
			continue
		}
		select {
		case p.actions <- action:
		default:
			p.logger.Warn("dropping unsolicited action", "action", action.Action)
		}
	}
}

// send marshals and writes one message. Safe for concurrent use.
func (p *player) send(messageType protocol.MessageType, data any) error {
	msg, err := protocol.NewMessage(messageType, data)
	if err != nil {
		return err
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(msg)
}

// sendError reports a protocol-level problem to the client without
// tearing down the connection.
func (p *player) sendError(code, message string) {
	if err := p.send(protocol.TypeError, protocol.ErrorData{Code: code, Message: message}); err != nil {
		p.logger.Debug("failed to send error", "error", err)
	}
}

// drainActions discards any action that arrived outside a request
// window, so a stale response cannot answer the next request.
func (p *player) drainActions() {
	for {
		select {
		case action := <-p.actions:
			p.logger.Warn("discarding stale action", "action", action.Action)
		default:
			return
		}
	}
}

func (p *player) close() {
	p.closeOnce.Do(func() {
		close(p.done)
		_ = p.conn.Close()
	})
}
