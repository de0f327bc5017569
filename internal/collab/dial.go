//go:build !js || !wasm

package collab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/endpoints"
)

// Dial opens the sync socket for roomID at ep's websocket base.
func Dial(ctx context.Context, ep endpoints.Endpoints, roomID string, logger zerolog.Logger) (*Conn, error) {
	path, err := RoomPath(roomID)
	if err != nil {
		return nil, err
	}
	wsURL := ep.WSURL(path)

	dialer := websocket.Dialer{
		Proxy:             http.ProxyFromEnvironment,
		HandshakeTimeout:  10 * time.Second,
		EnableCompression: true,
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket handshake with %s failed with status %d: %w", wsURL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to open websocket connection to %s: %w", wsURL, err)
	}

	logger.Debug().Str("url", wsURL).Str("room", roomID).Msg("Sync socket connected")

	return &Conn{
		fc:     &wsFrameConn{conn: conn},
		url:    wsURL,
		logger: logger.With().Str("room", roomID).Logger(),
	}, nil
}

type wsFrameConn struct {
	conn *websocket.Conn
}

func (w *wsFrameConn) write(payload []byte) error {
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *wsFrameConn) read(ctx context.Context) ([]byte, error) {
	deadline, _ := ctx.Deadline()
	if err := w.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() {
		w.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	for {
		msgType, payload, err := w.conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var netErr interface{ Timeout() bool }
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, context.DeadlineExceeded
			}
			return nil, err
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		return payload, nil
	}
}

func (w *wsFrameConn) close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return w.conn.Close()
}
