package votes

import "errors"

var (
	ErrAlreadyVoted = errors.New("vote already recorded")
	ErrNotVoted     = errors.New("no vote recorded")
)

// Vote is keyed by the (post, user) pair alone; it has no id of its own.
type Vote struct {
	PostID int64
	UserID int64
}

type Direction int

const (
	Remove Direction = 0
	Add    Direction = 1
)
