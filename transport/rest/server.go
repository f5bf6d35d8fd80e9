package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type matchRepo interface {
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	List(ctx context.Context) ([]*entity.Match, error)
}

type Server struct {
	logger    *slog.Logger
	matchRepo matchRepo
	assetsDir string
}

// New - REST server; assetsDir is served at / when set.
func New(logger *slog.Logger, matchRepo matchRepo, assetsDir string) *Server {
	return &Server{
		logger:    logger.With("component", "rest"),
		matchRepo: matchRepo,
		assetsDir: assetsDir,
	}
}

func (that *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/ping", NewPingHandler().PingHandler).Methods(http.MethodGet)
	router.HandleFunc("/matches", that.listMatches).Methods(http.MethodGet)
	router.HandleFunc("/matches/{id}", that.getMatch).Methods(http.MethodGet)

	if that.assetsDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(that.assetsDir)))
	}

	return router
}

// Start - starts REST server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
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

	return nil
}
