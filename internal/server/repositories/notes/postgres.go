package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Tags and media live in jsonb columns; they go through encodeList so an
// empty slice is stored as [] and never as SQL NULL.
func encodeList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

func decodeList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {

	tags, err := encodeList(note.Tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	media, err := encodeList(note.Media)
	if err != nil {
		return nil, fmt.Errorf("encoding media: %w", err)
	}

	query :=
		`INSERT INTO notes (user_id, title, content, tags, media)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		note.UserID, note.Title, note.Content, tags, media).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query :=
		`SELECT id, user_id, title, content, tags, media, created_at, updated_at FROM notes
		 WHERE id = $1
		 `

	note := &models.Note{}
	var tags, media []byte

	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &tags, &media, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if note.Tags, err = decodeList(tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if note.Media, err = decodeList(media); err != nil {
		return nil, fmt.Errorf("decoding media: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Note, error) {

	queryBuilder := squirrel.
		Select("id",
			"user_id",
			"title",
			"content",
			"tags",
			"media",
			"created_at",
			"updated_at").
		From("notes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC, id DESC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var note models.Note
		var tags, media []byte
		if err = rows.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &tags, &media, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if note.Tags, err = decodeList(tags); err != nil {
			return nil, fmt.Errorf("decoding tags: %w", err)
		}
		if note.Media, err = decodeList(media); err != nil {
			return nil, fmt.Errorf("decoding media: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) error {

	tags, err := encodeList(note.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags: %w", err)
	}
	media, err := encodeList(note.Media)
	if err != nil {
		return fmt.Errorf("encoding media: %w", err)
	}

	query :=
		`UPDATE notes SET title = $1, content = $2, tags = $3, media = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, tags, media, note.ID).Scan(&note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM notes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
