package inmemdb

import (
	"time"

	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

// Seed loads the demo catalogue: an admin, a teacher, three subjects and two Physics topics with their questions.
func Seed(db *DB) error {
	usrRepo := NewUserRepository(db)
	crsRepo := NewCourseRepository(db)
	now := time.Now().UTC()

	newUser := func(uname, pwd, role string) (user.User, error) {
		usr := user.User{Username: uname, Role: role, CreatedAt: now}
		if err := usr.SetPassword(pwd); err != nil {
			return user.User{}, errors.Wrapf(err, "hashing %s password", uname)
		}
		return usrRepo.CreateUser(usr)
	}

	if _, err := newUser("admin", "admin123", user.RoleAdmin); err != nil {
		return errors.Wrap(err, "seeding admin")
	}
	teacher, err := newUser("demo_teacher", "password123", user.RoleTeacher)
	if err != nil {
		return errors.Wrap(err, "seeding teacher")
	}

	subjects := []course.Subject{
		{
			Name:        "Physics",
			Description: "Study of matter, energy, and their interactions",
			ImageURL:    "https://images.unsplash.com/photo-1507413245164-6160d8298b31",
		},
		{
			Name:        "Chemistry",
			Description: "Study of substances, their properties, and reactions",
			ImageURL:    "https://images.unsplash.com/photo-1532094349884-543bc11b234d",
		},
		{
			Name:        "Biology",
			Description: "Study of living organisms and their processes",
			ImageURL:    "https://images.unsplash.com/photo-1475906089153-644d9452ce87",
		},
	}
	for i := range subjects {
		subjects[i].TeacherID = teacher.ID
		subjects[i].CreatedAt = now
		if subjects[i], err = crsRepo.CreateSubject(subjects[i]); err != nil {
			return errors.Wrap(err, "seeding subjects")
		}
	}

	physics := subjects[0]
	topics := []course.Topic{
		{Name: "Mechanics", Content: "Study of motion, forces, and energy..."},
		{Name: "Thermodynamics", Content: "Study of heat, temperature, and energy transfer..."},
	}
	for _, topic := range topics {
		topic.SubjectID = physics.ID
		topic.TeacherID = teacher.ID
		topic.CreatedAt = now
		if topic, err = crsRepo.CreateTopic(topic); err != nil {
			return errors.Wrap(err, "seeding topics")
		}

		questions := []course.Question{
			{
				Question: "What is Newton's First Law?",
				Options: []string{
					"An object at rest stays at rest...",
					"Force equals mass times acceleration",
					"For every action there is an equal reaction",
					"None of the above",
				},
			},
			{
				Question: "What is the unit of force?",
				Options:  []string{"Newton", "Joule", "Watt", "Pascal"},
			},
		}
		for _, q := range questions {
			q.TopicID = topic.ID
			if _, err := crsRepo.CreateQuestion(q); err != nil {
				return errors.Wrap(err, "seeding questions")
			}
		}
	}
	return nil
}
