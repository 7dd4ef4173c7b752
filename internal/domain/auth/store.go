package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"hradmin/internal/domain/shared"
	"hradmin/internal/platform/querier"
)

type StoreAPI interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, name, email, passwordHash, role string) (int64, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, password_hash, role, last_login, created_at
    FROM users
    WHERE lower(email) = lower($1)
  `, strings.TrimSpace(email)).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.LastLogin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return u, err
}

func (s *Store) Create(ctx context.Context, name, email, passwordHash, role string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, role)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, name, strings.TrimSpace(email), passwordHash, role).Scan(&id)
	if err != nil {
		return 0, shared.TranslateError(err, map[string]shared.Constraint{
			"users_email_key": {Field: "email", Message: "This email address is already registered."},
		})
	}
	return id, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}
