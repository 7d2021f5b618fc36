// Package sessions holds server-side session state behind an injectable
// Store so request handling never depends on process-wide globals. Two
// implementations exist: an in-memory map for tests and single-node runs,
// and a Redis-backed store for anything shared.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// idByteLen is the number of random bytes in a session id (hex-doubled on
// the wire).
const idByteLen = 32

// Store persists the association between an opaque session id and a user.
//
// Resolve is a pure lookup with no side effects beyond lazy expiry.
// Destroy is idempotent: destroying an unknown id is not an error.
type Store interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (*models.Session, error)
	Resolve(ctx context.Context, id string) (*models.Session, error)
	Destroy(ctx context.Context, id string) error
}

func newSessionID() (string, error) {
	return common.MakeRandHexString(idByteLen)
}

func newSession(userID int64, ttl time.Duration) (*models.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &models.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s, nil
}
