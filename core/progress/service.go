package progress

import (
	"errors"
	"time"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
)

var (
	ErrNotFound = errors.New("progress not found")

	NowFunc = time.Now // mockable
)

type (
	// Repository stores progress records. CreateProgress always inserts and sets
	// CompletedAt only for completed records.
	Repository interface {
		GetProgress(userID, topicID int) (Progress, error)
		CreateProgress(p Progress) (Progress, error)
		QueryProgress(userID, topicID int) ([]Progress, error)
	}

	// Topics is the subset of the course catalogue progress tracking needs.
	Topics interface {
		GetTopic(id int) (course.Topic, error)
		QueryQuestions(topicID int) ([]course.Question, error)
	}

	Service interface {
		Get(userID, topicID int) (Progress, error)
		Record(userID, topicID int, np NewProgress) (Progress, error)
		History(userID, topicID int) ([]Progress, error)
		Attempt(userID, topicID int, a Attempt) (AttemptResult, error)
	}

	service struct {
		repo   Repository
		topics Topics
	}
)

func NewService(repo Repository, topics Topics) Service {
	return &service{repo: repo, topics: topics}
}

// Get returns the most recent progress of userID on topicID, or ErrNotFound.
func (svc *service) Get(userID, topicID int) (Progress, error) {
	return svc.repo.GetProgress(userID, topicID)
}

// Record appends a new progress record; it returns course.ErrTopicNotFound for an unknown topic.
func (svc *service) Record(userID, topicID int, np NewProgress) (Progress, error) {
	if _, err := svc.topics.GetTopic(topicID); err != nil {
		return Progress{}, err
	}
	p := Progress{UserID: userID, TopicID: topicID, Completed: np.Completed}
	if np.Score != nil {
		p.Score = *np.Score
	}
	return svc.repo.CreateProgress(p)
}

// History lists every progress record of userID on topicID, newest first.
func (svc *service) History(userID, topicID int) ([]Progress, error) {
	records, err := svc.repo.QueryProgress(userID, topicID)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Attempt grades a.Answers against the topic's questions and records the result as completed.
func (svc *service) Attempt(userID, topicID int, a Attempt) (AttemptResult, error) {
	if _, err := svc.topics.GetTopic(topicID); err != nil {
		return AttemptResult{}, err
	}
	questions, err := svc.topics.QueryQuestions(topicID)
	if err != nil {
		return AttemptResult{}, err
	}

	correct, score := Grade(questions, a.Answers)
	p, err := svc.repo.CreateProgress(Progress{
		UserID:    userID,
		TopicID:   topicID,
		Score:     score,
		Completed: true,
	})
	if err != nil {
		return AttemptResult{}, err
	}
	return AttemptResult{Progress: p, Correct: correct, Total: len(questions)}, nil
}
