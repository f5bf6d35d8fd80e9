package entity

// Player is a match-local seat, not a global user identity.
type Player uint8

const (
	First Player = iota + 1
	Second
)

// Flip - returns the opponent seat.
func (that Player) Flip() Player {
	if that == First {
		return Second
	}
	return First
}

// String - renders the seat as the role number used on the wire.
func (that Player) String() string {
	if that == First {
		return "1"
	}
	return "2"
}
