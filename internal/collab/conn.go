package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// frameConn is the socket underneath a Conn.
type frameConn interface {
	write(payload []byte) error
	read(ctx context.Context) ([]byte, error)
	close() error
}

// Conn is a sync session for one room. Writes may come from any goroutine;
// reads must come from one.
type Conn struct {
	fc     frameConn
	url    string
	logger zerolog.Logger

	writeMu sync.Mutex
}

func (c *Conn) URL() string {
	return c.url
}

func (c *Conn) Send(msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msg.Type, err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.fc.write(payload); err != nil {
		return fmt.Errorf("failed to send %s message: %w", msg.Type, err)
	}
	return nil
}

// Receive blocks for the next message. If ctx ends first the connection
// cannot be read again and should be closed.
func (c *Conn) Receive(ctx context.Context) (Message, error) {
	for {
		payload, err := c.fc.read(ctx)
		if err != nil {
			return Message{}, err
		}
		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.logger.Warn().Err(err).Int("bytes", len(payload)).Msg("Dropping malformed sync frame")
			continue
		}
		return msg, nil
	}
}

// PublishUpdate broadcasts a Yjs update to the other clients in the room.
// The server stores the last update as the room state, so empty updates are
// rejected.
func (c *Conn) PublishUpdate(update []byte) error {
	if len(update) == 0 {
		return ErrEmptyUpdate
	}
	return c.Send(updateMessage(update))
}

// PublishAwareness broadcasts presence state (cursor, typing) for clientID.
func (c *Conn) PublishAwareness(clientID uint64, state interface{}) error {
	msg, err := awarenessMessage(clientID, state)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// RequestState asks the server for the latest document state and waits for
// it. The server stays silent when it holds no state, so ctx bounds the wait.
// Updates and awareness frames that arrive first are skipped.
func (c *Conn) RequestState(ctx context.Context) ([]byte, error) {
	if err := c.Send(Message{Type: TypeSyncRequest}); err != nil {
		return nil, err
	}
	for {
		msg, err := c.Receive(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for document state: %w", err)
		}
		if msg.Type != TypeYjsState {
			c.logger.Debug().Str("type", msg.Type).Msg("Skipping frame while waiting for state")
			continue
		}
		return msg.Update()
	}
}

func (c *Conn) Close() error {
	return c.fc.close()
}
