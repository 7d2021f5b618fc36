package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

// NoteService is the single authorization gate for note access. Every
// operation takes the authenticated user's id and checks it against the
// target note's owner before the store is touched for a mutation. A missing
// note and a foreign-owned note are indistinguishable to callers: both
// yield common.ErrorNotFoundOrForbidden, so note ids of other users cannot
// be probed.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// NoteUpdate carries a partial update; nil fields keep their stored value.
type NoteUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
	Media   *[]string
}

// NormalizeTags trims whitespace around each tag and drops empties.
// The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseTags splits free-text comma-separated tag input and normalizes it.
// "a, b , c" becomes ["a","b","c"]; "" becomes [].
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(raw, ","))
}

func validateNote(title, content string) error {
	ve := common.NewValidationError()
	if strings.TrimSpace(title) == "" {
		ve.Add("title", "is required")
	} else if len(title) > 255 {
		ve.Add("title", "must be at most 255 characters")
	}
	if strings.TrimSpace(content) == "" {
		ve.Add("content", "is required")
	}
	if !ve.Empty() {
		return ve
	}
	return nil
}

// loadOwned loads a note and enforces the ownership invariant. Absent and
// foreign notes are collapsed into one error on purpose.
func (s *NoteService) loadOwned(ctx context.Context, db dbx.DBTX, userID, noteID int64) (*models.Note, error) {
	repo := s.repomanager.Notes(db)
	note, err := repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFoundOrForbidden
		}
		return nil, fmt.Errorf("%w: loading note: %v", common.ErrorOperationFailed, err)
	}
	if note.UserID != userID {
		return nil, common.ErrorNotFoundOrForbidden
	}
	return note, nil
}

// Create validates the payload, stamps the caller as owner, and writes the
// note atomically, returning it with the generated id.
func (s *NoteService) Create(ctx context.Context, userID int64, title, content string, tags, media []string) (*models.Note, error) {
	if err := validateNote(title, content); err != nil {
		return nil, err
	}

	note := &models.Note{
		UserID:  userID,
		Title:   title,
		Content: content,
		Tags:    NormalizeTags(tags),
		Media:   NormalizeTags(media),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Notes(tx).Create(ctx, note)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating note: %v", common.ErrorOperationFailed, err)
	}

	return note, nil
}

// List returns the caller's notes and nothing else.
func (s *NoteService) List(ctx context.Context, userID int64) ([]models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	notes, err := repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing notes: %v", common.ErrorOperationFailed, err)
	}
	return notes, nil
}

// Get returns the note iff the caller owns it.
func (s *NoteService) Get(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	return s.loadOwned(ctx, s.db, userID, noteID)
}

// Update applies a partial update to an owned note inside one transaction,
// so the ownership check and the write cannot interleave with a delete.
func (s *NoteService) Update(ctx context.Context, userID, noteID int64, upd NoteUpdate) (*models.Note, error) {
	var note *models.Note

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		note, err = s.loadOwned(ctx, tx, userID, noteID)
		if err != nil {
			return err
		}

		if upd.Title != nil {
			note.Title = *upd.Title
		}
		if upd.Content != nil {
			note.Content = *upd.Content
		}
		if upd.Tags != nil {
			note.Tags = NormalizeTags(*upd.Tags)
		}
		if upd.Media != nil {
			note.Media = NormalizeTags(*upd.Media)
		}

		if err := validateNote(note.Title, note.Content); err != nil {
			return err
		}

		return s.repomanager.Notes(tx).Update(ctx, note)
	})
	if err != nil {
		var ve *common.ValidationError
		if errors.Is(err, common.ErrorNotFoundOrForbidden) || errors.As(err, &ve) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: updating note: %v", common.ErrorOperationFailed, err)
	}

	return note, nil
}

// Delete removes an owned note. The ownership check and the delete share a
// transaction for the same reason as Update.
func (s *NoteService) Delete(ctx context.Context, userID, noteID int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.loadOwned(ctx, tx, userID, noteID); err != nil {
			return err
		}
		return s.repomanager.Notes(tx).Delete(ctx, noteID)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFoundOrForbidden) {
			return err
		}
		return fmt.Errorf("%w: deleting note: %v", common.ErrorOperationFailed, err)
	}
	return nil
}
