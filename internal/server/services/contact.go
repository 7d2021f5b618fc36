package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
)

const (
	maxContactNameLen    = 100
	maxContactSubjectLen = 150
	minContactMessageLen = 10
)

// Shape check only; deliverability is the mail system's problem.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ContactService persists unauthenticated contact submissions and serves
// the admin-only listing.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repomanager: m}
}

func validateContact(name, email, subject, message string) error {
	ve := common.NewValidationError()

	if strings.TrimSpace(name) == "" {
		ve.Add("name", "is required")
	} else if len(name) > maxContactNameLen {
		ve.Add("name", fmt.Sprintf("must be at most %d characters", maxContactNameLen))
	}

	if strings.TrimSpace(email) == "" {
		ve.Add("email", "is required")
	} else if !emailRe.MatchString(email) {
		ve.Add("email", "invalid format")
	}

	if strings.TrimSpace(subject) == "" {
		ve.Add("subject", "is required")
	} else if len(subject) > maxContactSubjectLen {
		ve.Add("subject", fmt.Sprintf("must be at most %d characters", maxContactSubjectLen))
	}

	if strings.TrimSpace(message) == "" {
		ve.Add("message", "is required")
	} else if len(message) < minContactMessageLen {
		ve.Add("message", fmt.Sprintf("must be at least %d characters", minContactMessageLen))
	}

	if !ve.Empty() {
		return ve
	}
	return nil
}

// Submit validates and stores a contact message. On validation failure
// nothing is persisted.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message string) (*models.ContactMessage, error) {
	if err := validateContact(name, email, subject, message); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{Name: name, Email: email, Subject: subject, Message: message}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Contacts(tx).Create(ctx, msg)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: saving contact message: %v", common.ErrorOperationFailed, err)
	}

	return msg, nil
}

// List returns all contact messages for administrators. Non-admin callers
// get the same rejection as a missing resource.
func (s *ContactService) List(ctx context.Context, caller *models.User) ([]models.ContactMessage, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, common.ErrorNotFoundOrForbidden
	}

	msgs, err := s.repomanager.Contacts(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing contact messages: %v", common.ErrorOperationFailed, err)
	}
	return msgs, nil
}
