package contacts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.ContactMessage) (*models.ContactMessage, error) {

	query :=
		`INSERT INTO contact_messages (name, email, subject, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		msg.Name, msg.Email, msg.Subject, msg.Message).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	query :=
		`SELECT id, name, email, subject, message, created_at FROM contact_messages
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	msgs := []models.ContactMessage{}
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
	}

	return msgs, nil
}
