package apperror

import "errors"

var (
	ErrTransportSend   = errors.New("failed to send to peer")
	ErrTransportClosed = errors.New("peer channel closed")

	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidPlacement = errors.New("invalid placement")

	ErrMatchNotFound = errors.New("match not found")
)

// IsFatal - reports whether err ends the match.
func IsFatal(err error) bool {
	return errors.Is(err, ErrTransportSend) || errors.Is(err, ErrTransportClosed)
}
