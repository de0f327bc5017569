//go:build js && wasm

package collab

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/endpoints"
)

func Dial(ctx context.Context, ep endpoints.Endpoints, roomID string, logger zerolog.Logger) (*Conn, error) {
	return nil, ErrWebSocketUnsupported
}
