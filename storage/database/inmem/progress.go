package inmemdb

import (
	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
)

type progressRepository struct {
	db  *progressTable
	seq *sequence
}

var _ progress.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db.progress, seq: db.seq}
}

// GetProgress returns the newest record of the (userID, topicID) pair.
func (repo *progressRepository) GetProgress(userID, topicID int) (progress.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for i := len(repo.db.rows) - 1; i >= 0; i-- {
		if p := repo.db.rows[i]; p.UserID == userID && p.TopicID == topicID {
			return copyProgress(p), nil
		}
	}
	return progress.Progress{}, progress.ErrNotFound
}

func (repo *progressRepository) CreateProgress(p progress.Progress) (progress.Progress, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	p.ID = repo.seq.next()
	p.CompletedAt = nil
	if p.Completed {
		now := progress.NowFunc().UTC()
		p.CompletedAt = &now
	}
	row := p
	repo.db.rows = append(repo.db.rows, &row)
	return copyProgress(&row), nil
}

// QueryProgress lists the records of the (userID, topicID) pair, oldest first.
func (repo *progressRepository) QueryProgress(userID, topicID int) ([]progress.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]progress.Progress, 0)
	for _, p := range repo.db.rows {
		if p.UserID == userID && p.TopicID == topicID {
			records = append(records, copyProgress(p))
		}
	}
	return records, nil
}

func copyProgress(p *progress.Progress) progress.Progress {
	cp := *p
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		cp.CompletedAt = &at
	}
	return cp
}
