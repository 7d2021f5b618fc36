package models

import (
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/server/password"
)

// User is a registered identity. Password material lives behind
// password.Hash and is never serialized outward.
type User struct {
	ID        int64
	Username  string
	Password  password.Hash
	IsAdmin   bool
	CreatedAt time.Time
}
