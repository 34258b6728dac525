// Package protocol defines the websocket messages exchanged between the
// kuhnforbots server and remote bots.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of a websocket message.
type MessageType string

// Client -> Server message types
const (
	TypeConnect MessageType = "connect"
	TypeAction  MessageType = "action"
)

// Server -> Client message types
const (
	TypeConnected     MessageType = "connected"
	TypeHandStart     MessageType = "hand_start"
	TypeActionRequest MessageType = "action_request"
	TypePlayerAction  MessageType = "player_action"
	TypeHandResult    MessageType = "hand_result"
	TypeSessionResult MessageType = "session_result"
	TypeError         MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

// NewMessage wraps a payload in an envelope with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Decode unmarshals the envelope payload into out, checking the type
// tag first.
func (m *Message) Decode(want MessageType, out any) error {
	if m.Type != want {
		return fmt.Errorf("expected %s message, got %s", want, m.Type)
	}
	return json.Unmarshal(m.Data, out)
}

// Client -> Server payloads

// ConnectData is sent by a bot when connecting.
type ConnectData struct {
	Name string `json:"name"`
}

// ActionData is sent by a bot in response to an ActionRequest.
type ActionData struct {
	HandID int    `json:"hand_id"`
	Action string `json:"action"` // call, bet, fold, check
}

// Server -> Client payloads

// ConnectedData acknowledges a connection and assigns a seat.
type ConnectedData struct {
	Seat int `json:"seat"`
}

// HandStartData is sent to each player when a new hand begins. Card is
// the recipient's own card only.
type HandStartData struct {
	HandID     int    `json:"hand_id"`
	Seat       int    `json:"seat"`
	Card       string `json:"card"`
	FirstToAct int    `json:"first_to_act"`
}

// ActionRequestData asks a bot to choose an action.
type ActionRequestData struct {
	HandID         int      `json:"hand_id"`
	History        []string `json:"history"`
	LegalActions   []string `json:"legal_actions"`
	TimeoutSeconds int      `json:"timeout_seconds"`
}

// PlayerActionData is broadcast after every action.
type PlayerActionData struct {
	HandID int    `json:"hand_id"`
	Seat   int    `json:"seat"`
	Action string `json:"action"`
}

// HandResultData is sent when a hand ends. Cards carries both hole
// cards only when the hand reached a showdown; a fold reveals nothing.
type HandResultData struct {
	HandID   int        `json:"hand_id"`
	Rewards  [2]float64 `json:"rewards"`
	Showdown bool       `json:"showdown"`
	Cards    []string   `json:"cards,omitempty"`
}

// SessionResultData is sent when the configured number of hands has
// been played.
type SessionResultData struct {
	Hands  int        `json:"hands"`
	Totals [2]float64 `json:"totals"`
	Names  [2]string  `json:"names"`
}

// ErrorData reports a protocol or game error.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
