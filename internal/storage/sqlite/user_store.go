package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/avenn/stayfinder-be/internal/models"
)

const userColumns = "id, email, password_hash, first_name, last_name, is_admin, created_at, updated_at"

// UserStore persists users in SQLite.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, email, password_hash, first_name, last_name, is_admin, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.IsAdmin, user.CreatedAt, user.UpdatedAt)
	return translateErr(err)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET email = ?, password_hash = ?, first_name = ?, last_name = ?, is_admin = ?, updated_at = ? WHERE id = ?",
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.IsAdmin, user.UpdatedAt, user.ID)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return translateErr(err)
	}
	return requireAffected(res)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}
