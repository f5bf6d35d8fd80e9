package entity

import (
	"slices"
	"time"
)

const (
	StatusOngoing = "ongoing"
)

// Match is the live snapshot of an ongoing match, as published to the match directory.
type Match struct {
	ID        string    `json:"id"`
	First     string    `json:"first"`
	Second    string    `json:"second"`
	Turn      string    `json:"player_turn"`
	Moves     []int     `json:"moves"`
	Board     []string  `json:"board"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

func NewMatch(id, first, second string, startedAt time.Time) *Match {
	return &Match{
		ID:        id,
		First:     first,
		Second:    second,
		Turn:      First.String(),
		Moves:     []int{},
		Board:     NewBoard().Rows(),
		Status:    StatusOngoing,
		StartedAt: startedAt,
	}
}

// Record - applies a legal move to the snapshot.
func (that *Match) Record(column int, next Player, board *Board) {
	that.Moves = append(that.Moves, column)
	that.Turn = next.String()
	that.Board = board.Rows()
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Clone - deep copy, safe to hand to other goroutines.
func (that *Match) Clone() *Match {
	clone := *that
	clone.Moves = slices.Clone(that.Moves)
	clone.Board = slices.Clone(that.Board)
	return &clone
}
