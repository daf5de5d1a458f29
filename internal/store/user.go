package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dbaadom/dormcart/internal/model"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.DisplayName, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, email, password_hash, first_name, last_name, display_name, created_at`

// Create inserts a new user. The email is normalized to lowercase and the
// display name defaults to "first last" when not provided elsewhere.
// The caller supplies an already-hashed password, never the plaintext.
func (s *UserStore) Create(email, passwordHash, firstName, lastName string) (*model.User, error) {
	email = NormalizeEmail(email)
	displayName := strings.TrimSpace(firstName + " " + lastName)

	result, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, first_name, last_name, display_name) VALUES (?, ?, ?, ?, ?)`,
		email, passwordHash, firstName, lastName, displayName,
	)
	if err != nil {
		if isConstraintErr(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, NormalizeEmail(email))
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// UpdatePasswordHash overwrites the stored hash unconditionally. The caller
// must have already authorized the change.
func (s *UserStore) UpdatePasswordHash(id int64, passwordHash string) error {
	_, err := s.db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

// NormalizeEmail lowercases and trims an address so lookups and the unique
// index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
