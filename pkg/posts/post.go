package posts

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("post belongs to another user")
)

type Post struct {
	ID        int64
	Title     string
	Content   string
	Published bool
	OwnerID   int64
	Created   time.Time
	Votes     int64
}

// Filter narrows the post listing. Search matches against the title.
type Filter struct {
	Limit  int
	Offset int
	Search string
}
