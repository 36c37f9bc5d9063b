package user

import (
	"errors"
	"time"
)

// ErrEmailTaken is returned by Add when the unique index on email
// rejects the insert.
var ErrEmailTaken = errors.New("email already registered")

type User struct {
	ID       int64
	Email    string
	Password []byte
	Created  time.Time
}
