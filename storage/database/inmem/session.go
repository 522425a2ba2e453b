package inmemdb

import (
	"time"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/session"
)

type sessionRepository struct {
	db *sessionTable
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) session.Repository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(s session.Session) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[s.ID] = s
	return nil
}

func (repo *sessionRepository) GetSession(id string) (session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return s, nil
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) DeleteSession(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return session.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *sessionRepository) DeleteExpiredSessions(now time.Time) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var n int
	for id, s := range repo.db.table {
		if !now.Before(s.ExpiresAt) {
			delete(repo.db.table, id)
			n++
		}
	}
	return n, nil
}
