package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type sessionHandler interface {
	HandleSession(ctx context.Context, conn usecase.Conn, peerID string) error
}

type Server struct {
	logger   *slog.Logger
	sessions sessionHandler

	upgrader websocket.Upgrader

	// active counts running session handlers; they outlive the listener on shutdown
	active sync.WaitGroup
}

func New(logger *slog.Logger, sessions sessionHandler) *Server {
	return &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,

		upgrader: websocket.Upgrader{
			// clients are terminals and scripts, not browser pages
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler - routes /ws to the session handler. Sessions live until ctx is done.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server. Once ctx is done it stops accepting connections
// and returns after every session handler has finished.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	// no read or write timeouts: a parked client may wait for an opponent indefinitely
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-shutdownDone
	that.waitSessions()

	return nil
}

// waitSessions - blocks until no session handler is running.
func (that *Server) waitSessions() {
	that.active.Wait()
}
