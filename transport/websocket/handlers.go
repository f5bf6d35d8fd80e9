package websocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

// upgradeToWebSocket - upgrades the connection and hands it to the session handler.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	that.active.Add(1)
	defer that.active.Done()

	peerID := uuid.NewString()
	log := that.logger.With("method", "upgradeToWebSocket", "peer", peerID, "remote", req.RemoteAddr)

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(ws)
	defer conn.Close()

	// unblock reads on server shutdown
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	log.Info("WebSocket connection established", "userAgent", req.UserAgent())

	err = that.sessions.HandleSession(ctx, conn, peerID)
	switch {
	case errors.Is(err, usecase.ErrSessionAborted):
		log.Info("session aborted", "error", err)
	case apperror.IsFatal(err):
		log.Info("peer connection lost", "error", err)
	case err != nil:
		log.Warn("session ended with error", "error", err)
	default:
		log.Info("session finished")
	}
}
