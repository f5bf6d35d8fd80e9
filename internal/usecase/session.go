package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const maxNicknameLength = 3

// Conn is the duplex text channel to one client.
type Conn interface {
	Send(ctx context.Context, text string) error
	// Receive blocks for the next frame. A closed or broken channel is reported as an error.
	Receive(ctx context.Context) (entity.Frame, error)
}

// Session is one connected client. It is owned either by the rendezvous slot or by a match driver.
type Session struct {
	PeerID   string
	Nickname string

	conn Conn

	// parked is closed once a waiting session has finished its own writes.
	parked chan struct{}
	// released is closed when the owner of the session is done with it.
	released    chan struct{}
	releaseOnce sync.Once
}

func NewSession(peerID string, conn Conn) *Session {
	return &Session{
		PeerID:   peerID,
		conn:     conn,
		parked:   make(chan struct{}),
		released: make(chan struct{}),
	}
}

// DeriveNickname - keeps the first three characters of text, upper-cased.
func DeriveNickname(text string) string {
	runes := []rune(text)
	if len(runes) > maxNicknameLength {
		runes = runes[:maxNicknameLength]
	}

	return strings.ToUpper(string(runes))
}

// Released - closed when the session's connection may be dropped.
func (that *Session) Released() <-chan struct{} {
	return that.released
}

func (that *Session) release() {
	that.releaseOnce.Do(func() {
		close(that.released)
	})
}

func (that *Session) send(ctx context.Context, text string) error {
	if err := that.conn.Send(ctx, text); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrTransportSend, err)
	}

	return nil
}

func (that *Session) receive(ctx context.Context) (entity.Frame, error) {
	frame, err := that.conn.Receive(ctx)
	if err != nil {
		return entity.Frame{}, fmt.Errorf("%w: %w", apperror.ErrTransportClosed, err)
	}

	return frame, nil
}
