package postgres

import (
	"fmt"

	"github.com/julianstephens/tempo/internal/models"
	"github.com/julianstephens/tempo/internal/storage"
)

func (s *Store) GetTimeConfiguration() (models.TimeConfiguration, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.TimeConfiguration{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.TimeConfiguration{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.TimeConfiguration{}, err
	}
	if len(data) == 0 {
		return models.TimeConfiguration{}, fmt.Errorf("time configuration: %w", storage.ErrNotFound)
	}

	cfg, err := models.MapToTimeConfiguration(data)
	if err != nil {
		return models.TimeConfiguration{}, err
	}
	models.ApplyDefaultTimeConfiguration(&cfg)
	return cfg, nil
}

func (s *Store) SaveTimeConfiguration(cfg models.TimeConfiguration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range models.TimeConfigurationToMap(cfg) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}

	return tx.Commit()
}
