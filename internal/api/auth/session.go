package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/db"
	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

const (
	sessionCookieName = "league_session"
	sessionTTL        = 8 * time.Hour
	sessionTokenBytes = 32
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

type contextKey string

const employeeContextKey contextKey = "employee"
const sessionContextKey contextKey = "session_id"

// Sessions issues and restores logins. The cookie is a signed JWT naming a
// server-side session row; the row holds the identity, so it survives process
// restarts and logout can revoke it.
type Sessions struct {
	secret []byte
	store  *db.SessionStore
	secure bool
}

// NewSessions wires the session manager. secure controls the cookie's Secure
// flag and is off only in development.
func NewSessions(secret string, store *db.SessionStore, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), store: store, secure: secure}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Create starts a session for the employee and sets the auth cookie.
func (s *Sessions) Create(ctx context.Context, w http.ResponseWriter, employee league.Employee) error {
	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.store.Create(ctx, token, employee, expiresAt); err != nil {
		return err
	}

	claims := sessionClaims{
		SessionID: token,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", employee.ID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("signing session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return nil
}

// FromRequest restores the session named by the request's auth cookie.
func (s *Sessions) FromRequest(r *http.Request) (*db.Session, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.store.Get(r.Context(), claims.SessionID)
	if errors.Is(err, db.ErrSessionNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Destroy revokes the request's session and clears the cookie. Returns the
// revoked session id so callers can drop per-session state.
func (s *Sessions) Destroy(w http.ResponseWriter, r *http.Request) string {
	var sessionID string
	if session, err := s.FromRequest(r); err == nil {
		sessionID = session.Token
		s.store.Delete(r.Context(), session.Token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return sessionID
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ContextWithSession stores the restored identity and session id on the
// request context.
func ContextWithSession(ctx context.Context, session *db.Session) context.Context {
	ctx = context.WithValue(ctx, employeeContextKey, session.Employee)
	return context.WithValue(ctx, sessionContextKey, session.Token)
}

// EmployeeFromContext returns the authenticated identity, or nil.
func EmployeeFromContext(ctx context.Context) *league.Employee {
	employee, ok := ctx.Value(employeeContextKey).(league.Employee)
	if !ok {
		return nil
	}
	return &employee
}

// SessionIDFromContext returns the session id, or "" for anonymous requests.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey).(string)
	return id
}
