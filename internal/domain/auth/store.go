package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role
    FROM users
    WHERE email = $1 AND active
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role)
	return user, err
}

func (s *Store) HasPermission(ctx context.Context, role, permission string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM role_permissions
    WHERE role = $1 AND permission = $2
  `, role, permission).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
