package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/storage"
)

const contextColumns = `id, name, monday, tuesday, wednesday, thursday, friday, saturday, sunday,
       start_time, end_time, deleted_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContext(row rowScanner, extra ...any) (models.Context, error) {
	var c models.Context
	var deletedAt sql.NullString
	dest := append(extra,
		&c.ID, &c.Name, &c.Monday, &c.Tuesday, &c.Wednesday, &c.Thursday, &c.Friday, &c.Saturday, &c.Sunday,
		&c.StartTime, &c.EndTime, &deletedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return models.Context{}, err
	}
	c.DeletedAt = storage.StringPtr(deletedAt)
	return c, nil
}

func (s *Store) AddContext(c models.Context) error {
	existing, err := s.GetContextByName(c.Name)
	if err == nil && existing.ID != c.ID {
		return fmt.Errorf("context %q already exists", c.Name)
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return s.UpdateContext(c)
}

func (s *Store) GetContext(id string) (models.Context, error) {
	c, err := scanContext(s.db.QueryRow(`
SELECT `+contextColumns+`
FROM contexts WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Context{}, storage.NotFound("context", id)
	}
	return c, err
}

func (s *Store) GetContextByName(name string) (models.Context, error) {
	c, err := scanContext(s.db.QueryRow(`
SELECT `+contextColumns+`
FROM contexts WHERE lower(name) = lower($1) AND deleted_at IS NULL`, strings.TrimSpace(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Context{}, storage.NotFound("context", name)
	}
	return c, err
}

func (s *Store) GetAllContexts() ([]models.Context, error) {
	return s.queryContexts(`SELECT ` + contextColumns + ` FROM contexts WHERE deleted_at IS NULL ORDER BY name`)
}

func (s *Store) GetAllContextsIncludingDeleted() ([]models.Context, error) {
	return s.queryContexts(`SELECT ` + contextColumns + ` FROM contexts ORDER BY name`)
}

func (s *Store) queryContexts(query string, args ...any) ([]models.Context, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contexts []models.Context
	for rows.Next() {
		c, err := scanContext(rows)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, c)
	}
	return contexts, rows.Err()
}

func (s *Store) UpdateContext(c models.Context) error {
	_, err := s.db.Exec(`
INSERT INTO contexts (`+contextColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    monday = EXCLUDED.monday, tuesday = EXCLUDED.tuesday, wednesday = EXCLUDED.wednesday,
    thursday = EXCLUDED.thursday, friday = EXCLUDED.friday, saturday = EXCLUDED.saturday,
    sunday = EXCLUDED.sunday,
    start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
    deleted_at = EXCLUDED.deleted_at`,
		c.ID, c.Name, c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday, c.Sunday,
		c.StartTime, c.EndTime, storage.NullStringPtr(c.DeletedAt),
	)
	return err
}

func (s *Store) DeleteContext(id string) error {
	deleted, err := s.isDeleted("contexts", "context", id)
	if err != nil {
		return err
	}
	if deleted {
		return fmt.Errorf("context %s: %w", id, storage.ErrAlreadyDeleted)
	}
	_, err = s.db.Exec("UPDATE contexts SET deleted_at = $1 WHERE id = $2", storage.Now(), id)
	return err
}

func (s *Store) RestoreContext(id string) error {
	deleted, err := s.isDeleted("contexts", "context", id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("cannot restore context %s: %w", id, storage.ErrNotDeleted)
	}

	var name string
	if err := s.db.QueryRow("SELECT name FROM contexts WHERE id = $1", id).Scan(&name); err != nil {
		return err
	}
	if live, err := s.GetContextByName(name); err == nil && live.ID != id {
		return fmt.Errorf("cannot restore context %s: another context is named %q", id, name)
	}

	_, err = s.db.Exec("UPDATE contexts SET deleted_at = NULL WHERE id = $1", id)
	return err
}

// isDeleted reports the soft delete state of a row in table, which must be a trusted literal
func (s *Store) isDeleted(table, kind, id string) (bool, error) {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM "+table+" WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, storage.NotFound(kind, id)
		}
		return false, fmt.Errorf("failed to check %s existence: %w", kind, err)
	}
	return deletedAt.Valid, nil
}
