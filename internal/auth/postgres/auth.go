package postgres

import (
	"database/sql"
	"errors"

	"pto-tracker/internal/auth"

	"github.com/jmoiron/sqlx"
)

// Repository looks up login credentials. It runs on sqlx directly; the
// credential check is a single-row read and needs none of the ORM layer.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (string, int64, error) {
	var row struct {
		ID           int64  `db:"id"`
		PasswordHash string `db:"password_hash"`
	}

	query := `SELECT id, password_hash FROM users WHERE email = $1`
	if err := r.db.Get(&row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", 0, auth.ErrInvalidCredentials
		}
		return "", 0, err
	}

	return row.PasswordHash, row.ID, nil
}
