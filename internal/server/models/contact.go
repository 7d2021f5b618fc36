package models

import "time"

// ContactMessage is an unauthenticated, append-only contact submission.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}
