package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/utils"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

// StudyRepository persists whole study snapshots: the ordered slide
// array plus overlays is the unit of save, serialized as JSON.
type StudyRepository interface {
	Save(ctx context.Context, st *models.Study) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Study, error)
	ListAll(ctx context.Context) ([]*models.Study, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type sqliteStudyRepo struct {
	db *sql.DB
}

// NewSQLiteStudyRepository opens (or creates) the study database.
func NewSQLiteStudyRepository(dbPath string) (StudyRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS studies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create studies table: %w", err)
	}

	utils.Logger.Infof("Study database initialized at %s", dbPath)
	return &sqliteStudyRepo{db: db}, nil
}

func (r *sqliteStudyRepo) Save(ctx context.Context, st *models.Study) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal study %s: %w", st.ID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO studies (id, name, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, st.ID.String(), st.Name, string(payload), st.UpdatedAt)
	return err
}

func (r *sqliteStudyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Study, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM studies WHERE id = ?`, id.String(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st models.Study
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		return nil, fmt.Errorf("failed to decode study %s: %w", id, err)
	}
	return &st, nil
}

func (r *sqliteStudyRepo) ListAll(ctx context.Context) ([]*models.Study, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM studies ORDER BY updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Study
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var st models.Study
		if err := json.Unmarshal([]byte(payload), &st); err != nil {
			utils.Logger.Warnf("Skipping undecodable study row: %v", err)
			continue
		}
		out = append(out, &st)
	}
	return out, rows.Err()
}

func (r *sqliteStudyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM studies WHERE id = ?`, id.String())
	return err
}

func (r *sqliteStudyRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteStudyRepo) Close() error {
	return r.db.Close()
}
