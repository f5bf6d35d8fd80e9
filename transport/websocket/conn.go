package websocket

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// conn adapts a gorilla connection to the text channel the match manager drives.
// Control frames are answered by gorilla itself and never surface as frames.
type conn struct {
	ws *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{ws: ws}
}

func (that *conn) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// Receive - a close frame, a reset or a closed socket all come back as an error.
func (that *conn) Receive(ctx context.Context) (entity.Frame, error) {
	if err := ctx.Err(); err != nil {
		return entity.Frame{}, err
	}

	messageType, payload, err := that.ws.ReadMessage()
	if err != nil {
		return entity.Frame{}, fmt.Errorf("failed to read message: %w", err)
	}

	switch messageType {
	case websocket.TextMessage:
		return entity.TextFrame(string(payload)), nil
	case websocket.BinaryMessage:
		return entity.Frame{Kind: entity.FrameBinary}, nil
	case websocket.PingMessage:
		return entity.Frame{Kind: entity.FramePing}, nil
	case websocket.PongMessage:
		return entity.Frame{Kind: entity.FramePong}, nil
	default:
		return entity.Frame{Kind: entity.FrameClose}, nil
	}
}

func (that *conn) Close() error {
	that.closeOnce.Do(func() {
		that.closeErr = that.ws.Close()
	})

	return that.closeErr
}
