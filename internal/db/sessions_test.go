package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

func testEmployee() league.Employee {
	return league.Employee{
		ID:       42,
		Username: "admin",
		Email:    "admin@example.com",
		Address:  "Hanoi",
	}
}

func TestSessionRoundTrip(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	employee := testEmployee()
	if err := database.Sessions.Create(ctx, "token-1", employee, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}

	session, err := database.Sessions.Get(ctx, "token-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if diff := cmp.Diff(employee, session.Employee); diff != "" {
		t.Fatalf("employee mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	database, err := New(path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.Sessions.Create(ctx, "token-1", testEmployee(), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := database.Close(); err != nil {
		t.Fatalf("close database: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })

	session, err := reopened.Sessions.Get(ctx, "token-1")
	if err != nil {
		t.Fatalf("get session after reopen: %v", err)
	}
	if session.Employee.Username != "admin" {
		t.Fatalf("expected restored identity, got %+v", session.Employee)
	}
}

func TestLoginReplacesExistingSessionForEmployee(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	employee := testEmployee()
	if err := database.Sessions.Create(ctx, "token-old", employee, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create first session: %v", err)
	}
	if err := database.Sessions.Create(ctx, "token-new", employee, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create second session: %v", err)
	}

	if _, err := database.Sessions.Get(ctx, "token-old"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected old session replaced, got %v", err)
	}
	if _, err := database.Sessions.Get(ctx, "token-new"); err != nil {
		t.Fatalf("expected new session live, got %v", err)
	}
}

func TestExpiredSessionReadsAsNotFound(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	if err := database.Sessions.Create(ctx, "token-1", testEmployee(), time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := database.Sessions.Get(ctx, "token-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
}

func TestDeleteExpiredSweepsOnlyExpiredRows(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	live := testEmployee()
	stale := league.Employee{ID: 43, Username: "other", Email: "other@example.com"}
	if err := database.Sessions.Create(ctx, "token-live", live, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("create live session: %v", err)
	}
	if err := database.Sessions.Create(ctx, "token-stale", stale, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("create stale session: %v", err)
	}

	removed, err := database.Sessions.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
	if _, err := database.Sessions.Get(ctx, "token-live"); err != nil {
		t.Fatalf("live session must survive the sweep: %v", err)
	}
}
