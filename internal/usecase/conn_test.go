package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const waitTimeout = 2 * time.Second

var (
	errClosed     = errors.New("use of closed connection")
	errBrokenPipe = errors.New("broken pipe")
)

// fakeConn is a scripted client channel: the test pushes inbound frames and reads what the server sent.
type fakeConn struct {
	inbound chan entity.Frame
	sent    chan string

	mu        sync.Mutex
	closed    bool
	sendFails bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan entity.Frame, 64),
		sent:    make(chan string, 128),
	}
}

func (that *fakeConn) Send(_ context.Context, text string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sendFails {
		return errBrokenPipe
	}

	that.sent <- text

	return nil
}

func (that *fakeConn) Receive(ctx context.Context) (entity.Frame, error) {
	select {
	case frame, ok := <-that.inbound:
		if !ok {
			return entity.Frame{}, errClosed
		}
		return frame, nil
	case <-ctx.Done():
		return entity.Frame{}, ctx.Err()
	}
}

// typeText queues client text frames.
func (that *fakeConn) typeText(texts ...string) {
	for _, text := range texts {
		that.inbound <- entity.TextFrame(text)
	}
}

// hangUp makes every further Receive fail.
func (that *fakeConn) hangUp() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.closed {
		that.closed = true
		close(that.inbound)
	}
}

func (that *fakeConn) breakSend() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sendFails = true
}

// expect asserts the next messages the server sent on this channel.
func (that *fakeConn) expect(t *testing.T, messages ...string) {
	t.Helper()

	for _, want := range messages {
		select {
		case got := <-that.sent:
			require.Equal(t, want, got)
		case <-time.After(waitTimeout):
			require.Failf(t, "message not received", "expected %q", want)
		}
	}
}

// expectSilence asserts that nothing else was sent.
func (that *fakeConn) expectSilence(t *testing.T) {
	t.Helper()

	select {
	case got := <-that.sent:
		require.Failf(t, "unexpected message", "got %q", got)
	default:
	}
}

// drain returns everything sent so far.
func (that *fakeConn) drain() []string {
	var messages []string
	for {
		select {
		case message := <-that.sent:
			messages = append(messages, message)
		default:
			return messages
		}
	}
}
