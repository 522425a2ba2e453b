package testutil

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	echoapi "github.com/AnnonDomini/Exam-Bombers-V1/apps/api/echo"
	"github.com/AnnonDomini/Exam-Bombers-V1/core"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/session"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
	logsvc "github.com/AnnonDomini/Exam-Bombers-V1/services/logger"
	inmemdb "github.com/AnnonDomini/Exam-Bombers-V1/storage/database/inmem"
)

func init() {
	user.PasswordHashCost = bcrypt.MinCost
}

// App is a fully wired API server over a fresh in-memory store.
type App struct {
	Conf         *core.Config
	DB           *inmemdb.DB
	Server       *echoapi.Server
	UserRepo     user.Repository
	CourseRepo   course.Repository
	ProgressRepo progress.Repository
	SessionRepo  session.Repository
}

func NewApp(t *testing.T, conf ...*core.Config) *App {
	t.Helper()

	cnf := core.NewTestConfig()
	if len(conf) > 0 {
		cnf = conf[0]
	}

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)

	app := &App{
		Conf:         cnf,
		DB:           db,
		UserRepo:     inmemdb.NewUserRepository(db),
		CourseRepo:   inmemdb.NewCourseRepository(db),
		ProgressRepo: inmemdb.NewProgressRepository(db),
		SessionRepo:  inmemdb.NewSessionRepository(db),
	}
	courseSvc := course.NewService(app.CourseRepo)
	app.Server = echoapi.NewServer(echoapi.ServerDeps{
		Conf:        cnf,
		Logger:      logsvc.NewRollbarLogger(zaptest.NewLogger(t), cnf),
		UserSvc:     user.NewService(app.UserRepo, cnf),
		CourseSvc:   courseSvc,
		ProgressSvc: progress.NewService(app.ProgressRepo, courseSvc),
		SessionSvc:  session.NewService(app.SessionRepo, cnf),
		Validate:    validate,
		Translator:  translator,
	})
	return app
}

func CreateUser(t *testing.T, repo user.Repository, uname, pwd, role string, createdAt ...time.Time) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Username:  uname,
		Role:      role,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func CreateSubject(t *testing.T, repo course.Repository, name string, teacherID int) course.Subject {
	t.Helper()

	subj, err := repo.CreateSubject(course.Subject{
		Name:        name,
		Description: name + " description",
		ImageURL:    "https://example.com/" + name + ".png",
		TeacherID:   teacherID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createSubject() failed: %v", err)
	}
	return subj
}

func CreateTopic(t *testing.T, repo course.Repository, subjectID, teacherID int, name string) course.Topic {
	t.Helper()

	topic, err := repo.CreateTopic(course.Topic{
		SubjectID: subjectID,
		TeacherID: teacherID,
		Name:      name,
		Content:   name + " content",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("createTopic() failed: %v", err)
	}
	return topic
}

func CreateQuestion(t *testing.T, repo course.Repository, topicID int, question string, correct int, options ...string) course.Question {
	t.Helper()

	q, err := repo.CreateQuestion(course.Question{
		TopicID:       topicID,
		Question:      question,
		Options:       options,
		CorrectAnswer: correct,
	})
	if err != nil {
		t.Fatalf("createQuestion() failed: %v", err)
	}
	return q
}
