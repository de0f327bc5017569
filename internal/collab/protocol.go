// Package collab talks to the collaborative editor backend: document sync
// over websocket and the REST API, addressed through endpoints.Endpoints.
package collab

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Message types on the sync socket.
const (
	TypeYjsUpdate   = "yjs-update"
	TypeSyncRequest = "sync-request"
	TypeYjsState    = "yjs-state"
	TypeAwareness   = "awareness"
)

// LegacyRoomPath is the single shared room served before per-room routes existed.
const LegacyRoomPath = "/ws/collab/"

var (
	ErrInvalidRoomID        = errors.New("invalid room id")
	ErrEmptyUpdate          = errors.New("empty document update")
	ErrWebSocketUnsupported = errors.New("websocket sync is not supported in js/wasm builds")

	roomIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// Message is one JSON text frame. Data carries a base64 encoded Yjs update.
type Message struct {
	Type     string          `json:"type"`
	Data     string          `json:"data,omitempty"`
	ClientID json.RawMessage `json:"clientId,omitempty"`
	State    json.RawMessage `json:"state,omitempty"`
}

// Update decodes the Yjs update carried by m.
func (m Message) Update() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(m.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", m.Type, err)
	}
	return b, nil
}

func ValidRoomID(roomID string) bool {
	return roomIDPattern.MatchString(roomID)
}

// RoomPath returns the sync route for roomID. An empty id maps to the legacy room.
func RoomPath(roomID string) (string, error) {
	if roomID == "" {
		return LegacyRoomPath, nil
	}
	if !ValidRoomID(roomID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRoomID, roomID)
	}
	return LegacyRoomPath + roomID + "/", nil
}

func updateMessage(update []byte) Message {
	return Message{Type: TypeYjsUpdate, Data: base64.StdEncoding.EncodeToString(update)}
}

func awarenessMessage(clientID uint64, state interface{}) (Message, error) {
	id, err := json.Marshal(clientID)
	if err != nil {
		return Message{}, err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode awareness state: %w", err)
	}
	return Message{Type: TypeAwareness, ClientID: id, State: raw}, nil
}
