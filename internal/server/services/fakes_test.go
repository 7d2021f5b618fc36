package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	contactsrepo "github.com/dmitrijs2005/notekeeper/internal/server/repositories/contacts"
	notesrepo "github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	usersrepo "github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// ---- helpers ----

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:  "k",
		SessionTTL: time.Hour,
		BcryptCost: 4, // keep the hashing cheap in tests
	}
}

// ---- fakes ----

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byUsername map[string]*models.User
	byID       map[int64]*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeNotesRepo struct {
	notes map[int64]*models.Note

	nextID    int64
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error

	updated   *models.Note
	deletedID int64
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	if f.notes == nil {
		f.notes = map[int64]*models.Note{}
	}
	f.notes[n.ID] = n
	return n, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	n, ok := f.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *n
	return &out, nil
}

func (f *fakeNotesRepo) ListByOwner(ctx context.Context, userID int64) ([]models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Note{}
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.notes[n.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *n
	f.notes[n.ID] = &cp
	f.updated = &cp
	return nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.notes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.notes, id)
	f.deletedID = id
	return nil
}

type fakeContactsRepo struct {
	createErr error
	listOut   []models.ContactMessage
	listErr   error

	created *models.ContactMessage
}

func (f *fakeContactsRepo) Create(ctx context.Context, m *models.ContactMessage) (*models.ContactMessage, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.ID = 1
	m.CreatedAt = time.Now()
	f.created = m
	return m, nil
}

func (f *fakeContactsRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
	c *fakeContactsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository { return m.n }
func (m *fakeRepoManager) Contacts(db dbx.DBTX) contactsrepo.Repository { return m.c }
