package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a *sql.DB or an open
// transaction, so services can run several repository calls atomically.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
	Contacts(db dbx.DBTX) contacts.Repository
}
