package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")

	NowFunc = time.Now // mockable
)

// Session binds an opaque id to an authenticated user until ExpiresAt.
type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
}

func (s Session) Expired() bool {
	return !NowFunc().Before(s.ExpiresAt)
}

type (
	Repository interface {
		CreateSession(s Session) error
		GetSession(id string) (Session, error)
		DeleteSession(id string) error
		DeleteExpiredSessions(now time.Time) (int, error)
	}

	Service interface {
		Start(userID int) (Session, error)
		Resolve(id string) (Session, error)
		End(id string) error
		Purge() (int, error)
	}

	service struct {
		repo     Repository
		lifetime time.Duration
	}
)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{repo: repo, lifetime: conf.Session.Lifetime}
}

// Start opens a new session for userID.
func (svc *service) Start(userID int) (Session, error) {
	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: NowFunc().Add(svc.lifetime).UTC(),
	}
	if err := svc.repo.CreateSession(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Resolve returns the live session with id. Expired sessions are dropped and reported as ErrExpired.
func (svc *service) Resolve(id string) (Session, error) {
	s, err := svc.repo.GetSession(id)
	if err != nil {
		return Session{}, err
	}
	if s.Expired() {
		_ = svc.repo.DeleteSession(id)
		return Session{}, ErrExpired
	}
	return s, nil
}

// End destroys the session; ending an unknown session is not an error.
func (svc *service) End(id string) error {
	if err := svc.repo.DeleteSession(id); err != nil && err != ErrNotFound {
		return err
	}
	return nil
}

// Purge removes every expired session and returns how many were dropped.
func (svc *service) Purge() (int, error) {
	return svc.repo.DeleteExpiredSessions(NowFunc())
}
