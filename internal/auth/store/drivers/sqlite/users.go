package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/athleteone/athleteone/internal/auth/domain"
	"github.com/athleteone/athleteone/internal/auth/store"
)

type userStore struct {
	q queryer
}

var _ store.UserStore = (*userStore)(nil)

const userColumns = `id, email, name, roles, active_role, profile_completed, password_hash, created_at, updated_at`

func (s *userStore) Create(ctx context.Context, user *domain.User) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Name,
		encodeRoles(user.Roles),
		string(user.ActiveRole),
		boolToInt(user.ProfileCompleted),
		user.PasswordHash,
		user.CreatedAt.UnixMilli(),
		user.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create user: %w", mapConstraintErr(err))
	}
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *userStore) Update(ctx context.Context, user *domain.User) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE users
		SET email = ?, name = ?, roles = ?, active_role = ?,
		    profile_completed = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		user.Email,
		user.Name,
		encodeRoles(user.Roles),
		string(user.ActiveRole),
		boolToInt(user.ProfileCompleted),
		user.PasswordHash,
		user.UpdatedAt.UnixMilli(),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: update user: %w", mapConstraintErr(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: update user: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *userStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count users: %w", err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u                    domain.User
		roles, activeRole    string
		profileCompleted     int
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &roles, &activeRole,
		&profileCompleted, &u.PasswordHash, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: scan user: %w", err)
	}

	u.Roles = decodeRoles(roles)
	u.ActiveRole = domain.Role(activeRole)
	u.ProfileCompleted = profileCompleted != 0
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	u.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &u, nil
}

// Roles are stored space-joined; neither role name contains a space.
func encodeRoles(roles []domain.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func decodeRoles(s string) []domain.Role {
	if s == "" {
		return nil
	}
	parts := strings.Fields(s)
	roles := make([]domain.Role, len(parts))
	for i, p := range parts {
		roles[i] = domain.Role(p)
	}
	return roles
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
