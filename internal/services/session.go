package services

import (
	"context"
	"time"
)

// Session is the authenticated request context a reconciliation runs under.
type Session struct {
	UserID    uint
	ExpiresAt time.Time
}

func (session *Session) ActiveAt(now time.Time) bool {
	if session == nil || session.UserID == 0 {
		return false
	}
	return session.ExpiresAt.IsZero() || now.Before(session.ExpiresAt)
}

type SessionProvider interface {
	CurrentSession(ctx context.Context) (*Session, error)
}

// StaticSession serves a session that was already resolved, e.g. by auth
// middleware or an operator command.
type StaticSession struct {
	Session *Session
}

func (provider StaticSession) CurrentSession(context.Context) (*Session, error) {
	return provider.Session, nil
}
