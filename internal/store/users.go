package store

import (
	"context"
	"time"
)

const createUser = `
INSERT INTO users (email, password_hash, name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, email, password_hash, name, created_at, updated_at`

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new user account.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Email, arg.PasswordHash, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByID = `
SELECT id, email, password_hash, name, created_at, updated_at
FROM users WHERE id = ?`

// GetUserByID fetches a user by primary key.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const getUserByEmail = `
SELECT id, email, password_hash, name, created_at, updated_at
FROM users WHERE email = ?`

// GetUserByEmail fetches a user by email address.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const listUsers = `
SELECT id, email, password_hash, name, created_at, updated_at
FROM users ORDER BY created_at`

// ListUsers returns all user accounts.
func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const updateUserPassword = `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

// UpdateUserPasswordParams holds the fields for UpdateUserPassword.
type UpdateUserPasswordParams struct {
	ID           int64
	PasswordHash string
	UpdatedAt    time.Time
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	return err
}

const addUserRole = `
INSERT INTO user_roles (user_id, role, created_at)
VALUES (?, ?, ?)
ON CONFLICT (user_id, role) DO NOTHING`

// AddUserRoleParams holds the fields for AddUserRole.
type AddUserRoleParams struct {
	UserID    int64
	Role      string
	CreatedAt time.Time
}

// AddUserRole grants a role to a user. Granting an existing role is a no-op.
func (q *Queries) AddUserRole(ctx context.Context, arg AddUserRoleParams) error {
	_, err := q.db.ExecContext(ctx, addUserRole, arg.UserID, arg.Role, arg.CreatedAt)
	return err
}

const hasRole = `
SELECT COUNT(*) FROM user_roles WHERE user_id = ? AND role = ?`

// HasRoleParams holds the fields for HasRole.
type HasRoleParams struct {
	UserID int64
	Role   string
}

// HasRole reports whether the user holds the given role. This is the
// authoritative role-check used for all authorization decisions.
func (q *Queries) HasRole(ctx context.Context, arg HasRoleParams) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, hasRole, arg.UserID, arg.Role).Scan(&count)
	return count > 0, err
}

const listUserRoles = `
SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`

// ListUserRoles returns all roles held by a user.
func (q *Queries) ListUserRoles(ctx context.Context, userID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listUserRoles, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

const createProfile = `
INSERT INTO profiles (user_id, display_name, avatar_url, bio, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

// CreateProfileParams holds the fields for CreateProfile.
type CreateProfileParams struct {
	UserID      int64
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateProfile inserts an empty profile for a new user.
func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) error {
	_, err := q.db.ExecContext(ctx, createProfile,
		arg.UserID, arg.DisplayName, nil, nil, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getProfileByUserID = `
SELECT user_id, display_name, avatar_url, bio, created_at, updated_at
FROM profiles WHERE user_id = ?`

// GetProfileByUserID fetches a user's profile.
func (q *Queries) GetProfileByUserID(ctx context.Context, userID int64) (Profile, error) {
	row := q.db.QueryRowContext(ctx, getProfileByUserID, userID)
	var p Profile
	err := row.Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
