package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// ErrSessionNotFound is returned when a token has no live session row.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists login sessions. One employee holds at most one live
// session; logging in again replaces any existing rows.
type SessionStore struct {
	db *sql.DB
}

// Session is one stored login.
type Session struct {
	Token     string
	Employee  league.Employee
	ExpiresAt time.Time
}

// Create stores a session for the employee, replacing any existing sessions
// for the same employee id.
func (s *SessionStore) Create(ctx context.Context, token string, employee league.Employee, expiresAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning session tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE employee_id = ?`, employee.ID); err != nil {
		return fmt.Errorf("clearing existing sessions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (token, employee_id, username, email, address, phone_number, date_of_birth, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		token, employee.ID, employee.Username, employee.Email,
		employee.Address, employee.PhoneNumber, employee.DateOfBirth, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	return tx.Commit()
}

// Get returns the session for a token. Expired sessions read as not found.
func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, employee_id, username, email, address, phone_number, date_of_birth, expires_at
		FROM sessions WHERE token = ?`, token)

	var session Session
	err := row.Scan(
		&session.Token, &session.Employee.ID, &session.Employee.Username,
		&session.Employee.Email, &session.Employee.Address,
		&session.Employee.PhoneNumber, &session.Employee.DateOfBirth,
		&session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes a session, used on logout.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpired sweeps sessions past their expiry and reports how many rows
// went away.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweeping expired sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}
