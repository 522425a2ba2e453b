package inmemdb

import (
	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
)

type courseRepository struct {
	subject  *subjectTable
	topic    *topicTable
	question *questionTable
	seq      *sequence
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{
		subject:  db.subject,
		topic:    db.topic,
		question: db.question,
		seq:      db.seq,
	}
}

// Subjects

func (repo *courseRepository) CreateSubject(subj course.Subject) (course.Subject, error) {
	repo.subject.Lock()
	defer repo.subject.Unlock()

	subj.ID = repo.seq.next()
	row := subj
	repo.subject.rows = append(repo.subject.rows, &row)
	repo.subject.index[subj.ID] = &row
	return subj, nil
}

func (repo *courseRepository) GetSubject(id int) (course.Subject, error) {
	repo.subject.RLock()
	defer repo.subject.RUnlock()

	if subj, ok := repo.subject.index[id]; ok {
		return *subj, nil
	}
	return course.Subject{}, course.ErrSubjectNotFound
}

func (repo *courseRepository) querySubjects(keep func(*course.Subject) bool) []course.Subject {
	repo.subject.RLock()
	defer repo.subject.RUnlock()

	subjects := make([]course.Subject, 0, len(repo.subject.rows))
	for _, subj := range repo.subject.rows {
		if keep(subj) {
			subjects = append(subjects, *subj)
		}
	}
	return subjects
}

func (repo *courseRepository) QuerySubjects() ([]course.Subject, error) {
	return repo.querySubjects(func(*course.Subject) bool { return true }), nil
}

func (repo *courseRepository) QueryTeacherSubjects(teacherID int) ([]course.Subject, error) {
	return repo.querySubjects(func(subj *course.Subject) bool { return subj.TeacherID == teacherID }), nil
}

// Topics

func (repo *courseRepository) CreateTopic(topic course.Topic) (course.Topic, error) {
	repo.topic.Lock()
	defer repo.topic.Unlock()

	topic.ID = repo.seq.next()
	row := topic
	repo.topic.rows = append(repo.topic.rows, &row)
	repo.topic.index[topic.ID] = &row
	return topic, nil
}

func (repo *courseRepository) GetTopic(id int) (course.Topic, error) {
	repo.topic.RLock()
	defer repo.topic.RUnlock()

	if topic, ok := repo.topic.index[id]; ok {
		return *topic, nil
	}
	return course.Topic{}, course.ErrTopicNotFound
}

func (repo *courseRepository) QueryTopics(subjectID int) ([]course.Topic, error) {
	repo.topic.RLock()
	defer repo.topic.RUnlock()

	topics := make([]course.Topic, 0)
	for _, topic := range repo.topic.rows {
		if topic.SubjectID == subjectID {
			topics = append(topics, *topic)
		}
	}
	return topics, nil
}

func (repo *courseRepository) UpdateTopic(id int, patch course.TopicPatch) (course.Topic, error) {
	repo.topic.Lock()
	defer repo.topic.Unlock()

	topic, ok := repo.topic.index[id]
	if !ok {
		return course.Topic{}, course.ErrTopicNotFound
	}
	if patch.Name != nil {
		topic.Name = *patch.Name
	}
	if patch.Content != nil {
		topic.Content = *patch.Content
	}
	if patch.SubjectID != nil {
		topic.SubjectID = *patch.SubjectID
	}
	if patch.TeacherID != 0 {
		topic.TeacherID = patch.TeacherID
	}
	return *topic, nil
}

// Questions

func (repo *courseRepository) CreateQuestion(q course.Question) (course.Question, error) {
	repo.question.Lock()
	defer repo.question.Unlock()

	q.ID = repo.seq.next()
	q.Options = append([]string(nil), q.Options...)
	row := q
	repo.question.rows = append(repo.question.rows, &row)
	return q, nil
}

func (repo *courseRepository) QueryQuestions(topicID int) ([]course.Question, error) {
	repo.question.RLock()
	defer repo.question.RUnlock()

	questions := make([]course.Question, 0)
	for _, q := range repo.question.rows {
		if q.TopicID == topicID {
			cp := *q
			cp.Options = append([]string(nil), q.Options...)
			questions = append(questions, cp)
		}
	}
	return questions, nil
}
