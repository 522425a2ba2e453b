package course

import (
	"errors"
	"time"
)

var (
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrTopicNotFound    = errors.New("topic not found")

	NowFunc = time.Now // mockable
)

type (
	// Repository is the storage contract for subjects, topics and questions.
	// Listings are ordered by id.
	Repository interface {
		CreateSubject(subj Subject) (Subject, error)
		GetSubject(id int) (Subject, error)
		QuerySubjects() ([]Subject, error)
		QueryTeacherSubjects(teacherID int) ([]Subject, error)

		CreateTopic(topic Topic) (Topic, error)
		GetTopic(id int) (Topic, error)
		QueryTopics(subjectID int) ([]Topic, error)
		UpdateTopic(id int, patch TopicPatch) (Topic, error)

		CreateQuestion(q Question) (Question, error)
		QueryQuestions(topicID int) ([]Question, error)
	}

	Service interface {
		CreateSubject(teacherID int, ns NewSubject) (Subject, error)
		GetSubject(id int) (Subject, error)
		QuerySubjects() ([]Subject, error)
		QueryTeacherSubjects(teacherID int) ([]Subject, error)

		CreateTopic(subjectID, teacherID int, nt NewTopic) (Topic, error)
		GetTopic(id int) (Topic, error)
		QueryTopics(subjectID int) ([]Topic, error)
		UpdateTopic(id int, patch TopicPatch) (Topic, error)

		CreateQuestion(topicID int, nq NewQuestion) (Question, error)
		QueryQuestions(topicID int) ([]Question, error)
	}

	service struct {
		repo Repository
	}
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CreateSubject(teacherID int, ns NewSubject) (Subject, error) {
	return svc.repo.CreateSubject(Subject{
		Name:        ns.Name,
		Description: ns.Description,
		ImageURL:    ns.ImageURL,
		TeacherID:   teacherID,
		CreatedAt:   NowFunc().UTC(),
	})
}

func (svc *service) GetSubject(id int) (Subject, error) {
	return svc.repo.GetSubject(id)
}

func (svc *service) QuerySubjects() ([]Subject, error) {
	return svc.repo.QuerySubjects()
}

func (svc *service) QueryTeacherSubjects(teacherID int) ([]Subject, error) {
	return svc.repo.QueryTeacherSubjects(teacherID)
}

// CreateTopic returns ErrSubjectNotFound when subjectID does not exist.
func (svc *service) CreateTopic(subjectID, teacherID int, nt NewTopic) (Topic, error) {
	if _, err := svc.repo.GetSubject(subjectID); err != nil {
		return Topic{}, err
	}
	return svc.repo.CreateTopic(Topic{
		SubjectID: subjectID,
		TeacherID: teacherID,
		Name:      nt.Name,
		Content:   nt.Content,
		CreatedAt: NowFunc().UTC(),
	})
}

func (svc *service) GetTopic(id int) (Topic, error) {
	return svc.repo.GetTopic(id)
}

func (svc *service) QueryTopics(subjectID int) ([]Topic, error) {
	return svc.repo.QueryTopics(subjectID)
}

// UpdateTopic returns ErrTopicNotFound for an unknown topic, ErrSubjectNotFound when moving it to an unknown subject.
func (svc *service) UpdateTopic(id int, patch TopicPatch) (Topic, error) {
	if _, err := svc.repo.GetTopic(id); err != nil {
		return Topic{}, err
	}
	if patch.SubjectID != nil {
		if _, err := svc.repo.GetSubject(*patch.SubjectID); err != nil {
			return Topic{}, err
		}
	}
	return svc.repo.UpdateTopic(id, patch)
}

// CreateQuestion returns ErrTopicNotFound when topicID does not exist.
func (svc *service) CreateQuestion(topicID int, nq NewQuestion) (Question, error) {
	if _, err := svc.repo.GetTopic(topicID); err != nil {
		return Question{}, err
	}
	q := Question{
		TopicID:  topicID,
		Question: nq.Question,
		Options:  append([]string(nil), nq.Options...),
	}
	if nq.CorrectAnswer != nil {
		q.CorrectAnswer = *nq.CorrectAnswer
	}
	return svc.repo.CreateQuestion(q)
}

func (svc *service) QueryQuestions(topicID int) ([]Question, error) {
	return svc.repo.QueryQuestions(topicID)
}
