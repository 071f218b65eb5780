package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/userauth/userauth-go/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, email, name, password_hash, admin, created_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB, dialect Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// Create inserts a new user and sets the generated ID on the user struct.
// Email uniqueness is not enforced.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := r.dialect.rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)

	id := uuid.NewString()
	createdAt := time.Now().UTC()

	if _, err := r.db.ExecContext(ctx, query,
		id, user.Email, user.Name, user.PasswordHash, user.Admin, createdAt,
	); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// GetByEmail retrieves the earliest created user with the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users
		WHERE email = ? ORDER BY created_at, id LIMIT 1`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Update changes the name and password hash of a user and returns the updated record.
func (r *UserRepository) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	query := r.dialect.rebind(`UPDATE users SET name = ?, password_hash = ? WHERE id = ?`)

	if _, err := r.db.ExecContext(ctx, query, upd.Name, upd.PasswordHash, id); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	// MySQL reports zero affected rows when the values are unchanged, so the
	// existence check is a read rather than RowsAffected.
	return r.GetByID(ctx, id)
}

// Delete removes a user. It reports whether a record existed.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := r.dialect.rebind(`DELETE FROM users WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}

	return rowsAffected > 0, nil
}

// List retrieves every user ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Admin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Admin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return user, nil
}
