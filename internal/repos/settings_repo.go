package repos

import (
	"robomart/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) All() ([]domain.Setting, error) {
	var out []domain.Setting
	err := r.db.Select(&out, `SELECT key, value FROM settings ORDER BY key`)
	return out, err
}

func (r *SettingsRepo) Get(key string) (string, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM settings WHERE key = ?`, key)
	return v, err
}

func (r *SettingsRepo) Set(key, value string) error {
	_, err := r.db.Exec(`
	  INSERT INTO settings(key, value) VALUES(?, ?)
	  ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}
