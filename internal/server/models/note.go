package models

import "time"

// Note belongs to exactly one user. Tags and Media are never nil: an empty
// list round-trips as [].
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Tags      []string
	Media     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
