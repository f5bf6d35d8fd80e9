package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/matchmaking"
)

var ErrSessionAborted = errors.New("session aborted before pairing")

type matchRepo interface {
	CreateOrUpdate(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
}

type MatchConfig struct {
	// PollBackoff is the pause after a non-text frame before polling again.
	PollBackoff time.Duration
	// RandomFirst picks the first mover at random; otherwise the second arrival always moves first.
	RandomFirst bool
}

type MatchManager struct {
	logger *slog.Logger

	registry  *matchmaking.Registry[*Session]
	matchRepo matchRepo

	pollBackoff time.Duration
	randomFirst bool
}

func NewMatchManager(logger *slog.Logger, registry *matchmaking.Registry[*Session], matchRepo matchRepo, conf MatchConfig) *MatchManager {
	return &MatchManager{
		logger: logger.With("component", "match-manager"),

		registry:  registry,
		matchRepo: matchRepo,

		pollBackoff: conf.PollBackoff,
		randomFirst: conf.RandomFirst,
	}
}

// HandleSession - drives one client from connection to the end of its match.
// A session that ends up waiting blocks here until the match that adopts it is over,
// so the caller may close the connection as soon as HandleSession returns.
func (that *MatchManager) HandleSession(ctx context.Context, conn Conn, peerID string) error {
	log := that.logger.With("method", "HandleSession", "peer", peerID)

	session := NewSession(peerID, conn)

	if err := that.negotiateNickname(ctx, session); err != nil {
		log.Info("client left before choosing a nickname", "error", err)
		return fmt.Errorf("%w: %w", ErrSessionAborted, err)
	}

	log = log.With("nickname", session.Nickname)

	peer, paired := that.registry.TryPair(session)
	if !paired {
		return that.park(ctx, session, log)
	}

	log.Info("paired", "opponent", peer.Nickname, "opponentPeer", peer.PeerID)

	that.runMatch(ctx, peer, session)

	return nil
}

// negotiateNickname - asks for a nickname and waits for the first text frame.
func (that *MatchManager) negotiateNickname(ctx context.Context, session *Session) error {
	if err := session.send(ctx, msgEnterNickname); err != nil {
		return err
	}

	for {
		frame, err := session.receive(ctx)
		if err != nil {
			return err
		}

		if frame.IsText() {
			session.Nickname = DeriveNickname(frame.Text)
			return nil
		}

		if err = that.backoff(ctx); err != nil {
			return err
		}
	}
}

// park - keeps a waiting session alive until the match that adopts it releases it.
func (that *MatchManager) park(ctx context.Context, session *Session, log *slog.Logger) error {
	log.Info("waiting for an opponent")

	err := session.send(ctx, msgMatchmaking)
	close(session.parked)

	if err != nil && that.registry.Withdraw(session) {
		session.release()
		return fmt.Errorf("failed to notify waiting session: %w", err)
	}

	select {
	case <-session.Released():
		return nil
	case <-ctx.Done():
		that.registry.Withdraw(session)
		return fmt.Errorf("waiting session interrupted: %w", ctx.Err())
	}
}

func (that *MatchManager) runMatch(ctx context.Context, waiter, arrival *Session) {
	defer waiter.release()
	defer arrival.release()

	select {
	case <-waiter.parked:
	case <-ctx.Done():
		return
	}

	first, second := arrival, waiter
	if that.pickFirst() == entity.Second {
		first, second = waiter, arrival
	}

	game := newMatch(uuid.NewString(), first, second, that.pollBackoff)
	log := that.logger.With("method", "runMatch", "matchID", game.id, "first", first.Nickname, "second", second.Nickname)
	game.onMove = func(snapshot *entity.Match) {
		that.track(ctx, snapshot, log)
	}

	log.Info("match started")
	that.track(ctx, game.snapshot, log)

	result, err := game.run(ctx)

	that.untrack(ctx, game.id, log)

	switch result {
	case resultWin:
		log.Info("match won", "winner", game.turn.String(), "moves", len(game.snapshot.Moves))
	case resultDraw:
		log.Info("match drawn")
	case resultDisconnect:
		log.Info("match ended by disconnect", "error", err)
	}
}

// pickFirst - chooses the seat of the second arrival.
func (that *MatchManager) pickFirst() entity.Player {
	if that.randomFirst && rand.IntN(2) == 1 { //nolint: gosec // turn order, not a secret
		return entity.Second
	}

	return entity.First
}

func (that *MatchManager) backoff(ctx context.Context) error {
	return sleep(ctx, that.pollBackoff)
}

func (that *MatchManager) track(ctx context.Context, snapshot *entity.Match, log *slog.Logger) {
	if err := that.matchRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		log.Warn("failed to publish match snapshot", "error", err)
	}
}

func (that *MatchManager) untrack(ctx context.Context, id string, log *slog.Logger) {
	if err := that.matchRepo.DeleteByID(context.WithoutCancel(ctx), id); err != nil {
		log.Warn("failed to remove match snapshot", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
