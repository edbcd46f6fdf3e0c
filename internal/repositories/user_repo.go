package repositories

import (
	"context"
	"strings"

	intdb "tours/internal/db"
	"tours/internal/domain/models"
)

type UserRepo struct {
	DB intdb.DBTX
}

func (r UserRepo) db() intdb.DBTX { return conn(r.DB) }

const userSelect = `SELECT id, name, username, email, COALESCE(phone, ''), password_hash, role, status, created_at FROM users`

func scanUser(s rowScanner, u *models.User) error {
	return s.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt)
}

// FindByLogin matches either the email or the username.
func (r UserRepo) FindByLogin(ctx context.Context, login string) (models.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var u models.User
	err := scanUser(r.db().QueryRowContext(ctx,
		userSelect+` WHERE LOWER(email) = ? OR LOWER(username) = ? LIMIT 1`, login, login), &u)
	return u, err
}

func (r UserRepo) Get(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := scanUser(r.db().QueryRowContext(ctx, userSelect+` WHERE id = ?`, id), &u)
	return u, err
}

func (r UserRepo) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Username, strings.ToLower(u.Email), intdb.NullIfEmpty(u.Phone), u.PasswordHash, u.Role, u.Status, u.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertAdmin creates the admin or resets its password and role.
func (r UserRepo) UpsertAdmin(ctx context.Context, u models.User) error {
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, username, email, password_hash, role, status, created_at)
		VALUES (?, ?, ?, ?, 'admin', 'active', ?)
		ON DUPLICATE KEY UPDATE password_hash = VALUES(password_hash), role = 'admin', status = 'active'`,
		u.Name, u.Username, strings.ToLower(u.Email), u.PasswordHash, u.CreatedAt,
	)
	return err
}
