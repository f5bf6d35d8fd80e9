package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type result int

const (
	resultWin result = iota + 1
	resultDraw
	resultDisconnect
)

// match is the protocol driver for two paired sessions. It is confined to one goroutine.
type match struct {
	id string

	first  *Session
	second *Session

	board    *entity.Board
	turn     entity.Player
	snapshot *entity.Match

	pollBackoff time.Duration
	onMove      func(snapshot *entity.Match)
}

func newMatch(id string, first, second *Session, pollBackoff time.Duration) *match {
	return &match{
		id:          id,
		first:       first,
		second:      second,
		board:       entity.NewBoard(),
		turn:        entity.First,
		snapshot:    entity.NewMatch(id, first.Nickname, second.Nickname, time.Now().UTC()),
		pollBackoff: pollBackoff,
		onMove:      func(*entity.Match) {},
	}
}

func (that *match) seat(player entity.Player) *Session {
	if player == entity.First {
		return that.first
	}
	return that.second
}

// run - plays the match to a terminal result. The error explains a disconnect.
func (that *match) run(ctx context.Context) (result, error) {
	if err := that.announce(ctx); err != nil {
		return resultDisconnect, err
	}

	for {
		if err := that.send(ctx, that.turn, msgColumnPrompt); err != nil {
			return resultDisconnect, err
		}

		text, err := that.receive(ctx, that.turn)
		if err != nil {
			return resultDisconnect, err
		}

		column, err := that.place(text)
		switch {
		case errors.Is(err, apperror.ErrInvalidInput):
			err = that.send(ctx, that.turn, msgInvalidInput)
		case errors.Is(err, apperror.ErrInvalidPlacement):
			err = that.send(ctx, that.turn, msgInvalidPlacement)
		default:
			err = that.broadcast(ctx, msgPlacement(that.turn, column))
			if err == nil {
				if outcome, over := that.settle(ctx, column); over {
					return outcome, nil
				}
			}
		}

		if err != nil {
			return resultDisconnect, err
		}
	}
}

// announce - introduces the players to each other and hands out the roles.
func (that *match) announce(ctx context.Context) error {
	if err := that.send(ctx, entity.First, msgMatchedAgainst(that.second.Nickname)); err != nil {
		return err
	}

	if err := that.send(ctx, entity.Second, msgMatchedAgainst(that.first.Nickname)); err != nil {
		return err
	}

	if err := that.send(ctx, entity.First, msgYouAre(entity.First)); err != nil {
		return err
	}

	return that.send(ctx, entity.Second, msgYouAre(entity.Second))
}

// place - parses the column and drops the current player's piece. The board is untouched on error.
// A single leading plus sign is allowed.
func (that *match) place(text string) (int, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidInput, text)
	}

	if value >= entity.BoardWidth || !that.board.Place(int(value), that.turn) {
		return 0, fmt.Errorf("%w: column %d", apperror.ErrInvalidPlacement, value)
	}

	return int(value), nil
}

// settle - records a legal move, checks the board and advances the turn when the match goes on.
func (that *match) settle(ctx context.Context, column int) (result, bool) {
	if that.board.CheckWin(that.turn) {
		that.snapshot.Record(column, that.turn, that.board)
		_ = that.broadcast(ctx, msgWinner(that.turn))
		return resultWin, true
	}

	if that.board.IsFull() {
		that.snapshot.Record(column, that.turn, that.board)
		_ = that.broadcast(ctx, msgDraw)
		return resultDraw, true
	}

	that.turn = that.turn.Flip()
	that.snapshot.Record(column, that.turn, that.board)
	that.onMove(that.snapshot)

	return 0, false
}

// send - writes to one side; on failure the other side is told its peer is gone.
func (that *match) send(ctx context.Context, player entity.Player, text string) error {
	if err := that.seat(player).send(ctx, text); err != nil {
		that.notifyPeerGone(ctx, player)
		return fmt.Errorf("player %s: %w", player, err)
	}

	return nil
}

func (that *match) broadcast(ctx context.Context, text string) error {
	if err := that.send(ctx, entity.First, text); err != nil {
		return err
	}

	return that.send(ctx, entity.Second, text)
}

// receive - waits for the next text frame of player, skipping other frames.
func (that *match) receive(ctx context.Context, player entity.Player) (string, error) {
	for {
		frame, err := that.seat(player).receive(ctx)
		if err != nil {
			that.notifyPeerGone(ctx, player)
			return "", fmt.Errorf("player %s: %w", player, err)
		}

		if frame.IsText() {
			return frame.Text, nil
		}

		if err = sleep(ctx, that.pollBackoff); err != nil {
			return "", err
		}
	}
}

func (that *match) notifyPeerGone(ctx context.Context, gone entity.Player) {
	_ = that.seat(gone.Flip()).send(ctx, msgPeerDisconnected)
}
