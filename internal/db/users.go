package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tedhq/ted/pkg/models"
)

// CreateUser registers a user. Duplicate user ids or emails surface as
// an error from the unique constraint.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (user_id, email, password, role) VALUES (?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, u.UserID, u.Email, u.Password, u.Role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	u.ID = id
	u.Status = models.UserStatusActive
	return nil
}

// GetUser retrieves a user by its external id, or nil if unknown.
func (db *DB) GetUser(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT id, user_id, email, password, role, COALESCE(status, 'active') FROM users WHERE user_id = ?`
	u := &models.User{}
	err := db.QueryRowContext(ctx, query, userID).Scan(
		&u.ID, &u.UserID, &u.Email, &u.Password, &u.Role, &u.Status,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Authenticate checks the credential pair and returns the user on
// success, nil otherwise.
func (db *DB) Authenticate(ctx context.Context, userID, password string) (*models.User, error) {
	u, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password != password {
		return nil, nil
	}
	return u, nil
}

// ListEmployees returns id and email of every employee-role user.
func (db *DB) ListEmployees(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, user_id, email FROM users WHERE role = ? ORDER BY user_id ASC`
	rows, err := db.QueryContext(ctx, query, models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u := models.User{Role: models.RoleEmployee}
		if err := rows.Scan(&u.ID, &u.UserID, &u.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return users, nil
}

// CreateInvitation stores a new invitation with a generated code. It
// fails if an invitation for the email or user id already exists.
func (db *DB) CreateInvitation(ctx context.Context, email, userID string, role models.Role) (*models.Invitation, error) {
	existing, err := db.HasInvitation(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if existing {
		return nil, fmt.Errorf("invitation already exists for %s / %s", email, userID)
	}

	inv := &models.Invitation{
		Email:  email,
		UserID: userID,
		Role:   role,
		Code:   uuid.NewString(),
	}
	query := `INSERT INTO invitations (email, user_id, role, invitation_code) VALUES (?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, inv.Email, inv.UserID, inv.Role, inv.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	if inv.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read invitation id: %w", err)
	}
	return inv, nil
}

// HasInvitation reports whether any invitation exists for the email or
// the user id.
func (db *DB) HasInvitation(ctx context.Context, email, userID string) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM invitations WHERE email = ? OR user_id = ?`
	if err := db.QueryRowContext(ctx, query, email, userID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check invitations: %w", err)
	}
	return n > 0, nil
}

// GetInvitation finds the invitation matching the registration triple,
// or nil when none matches.
func (db *DB) GetInvitation(ctx context.Context, userID string, role models.Role, code string) (*models.Invitation, error) {
	query := `
		SELECT id, email, user_id, role, invitation_code, created_at
		FROM invitations
		WHERE user_id = ? AND role = ? AND invitation_code = ?
	`
	inv := &models.Invitation{}
	err := db.QueryRowContext(ctx, query, userID, role, code).Scan(
		&inv.ID, &inv.Email, &inv.UserID, &inv.Role, &inv.Code, &inv.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	return inv, nil
}

// DeleteInvitation removes a consumed invitation.
func (db *DB) DeleteInvitation(ctx context.Context, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	return nil
}
