package inmemdb

import (
	"sync"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/session"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

type (
	// DB holds every table of the in-memory store. Ids of all entity types come from one sequence.
	DB struct {
		seq *sequence

		user     *userTable
		subject  *subjectTable
		topic    *topicTable
		question *questionTable
		progress *progressTable
		session  *sessionTable
	}

	sequence struct {
		sync.Mutex
		last int
	}

	// tables keep rows in insertion order, which is also id order.

	userTable struct {
		sync.RWMutex
		rows  []*user.User
		index map[int]*user.User
	}

	subjectTable struct {
		sync.RWMutex
		rows  []*course.Subject
		index map[int]*course.Subject
	}

	topicTable struct {
		sync.RWMutex
		rows  []*course.Topic
		index map[int]*course.Topic
	}

	questionTable struct {
		sync.RWMutex
		rows []*course.Question
	}

	progressTable struct {
		sync.RWMutex
		rows []*progress.Progress
	}

	sessionTable struct {
		sync.RWMutex
		table map[string]session.Session
	}
)

func Open() (*DB, error) {
	db := &DB{
		seq:      new(sequence),
		user:     &userTable{index: make(map[int]*user.User)},
		subject:  &subjectTable{index: make(map[int]*course.Subject)},
		topic:    &topicTable{index: make(map[int]*course.Topic)},
		question: new(questionTable),
		progress: new(progressTable),
		session:  &sessionTable{table: make(map[string]session.Session)},
	}
	return db, nil
}

// next returns the next id. Callers hold the write lock of the table the id is for.
func (seq *sequence) next() int {
	seq.Lock()
	defer seq.Unlock()
	seq.last++
	return seq.last
}
