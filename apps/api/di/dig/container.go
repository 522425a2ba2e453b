package dig_container

import (
	"fmt"
	"log"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/AnnonDomini/Exam-Bombers-V1/apps/api/echo"
	"github.com/AnnonDomini/Exam-Bombers-V1/core"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/session"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
	logsvc "github.com/AnnonDomini/Exam-Bombers-V1/services/logger"
	inmemdb "github.com/AnnonDomini/Exam-Bombers-V1/storage/database/inmem"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zl.Named("api"), conf)
}

func newDBLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zl.Named("db"), conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) (*inmemdb.DB, error) {
	db, err := inmemdb.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.SeedDemoData {
		if err = inmemdb.Seed(db); err != nil {
			loggerParam.Logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
		}
		loggerParam.Logger.Info("database seeded with demo data")
	}
	return db, nil
}

func newProgressService(repo progress.Repository, courseSvc course.Service) progress.Service {
	return progress.NewService(repo, courseSvc)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewZap))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewCourseRepository))
	must(c.Provide(inmemdb.NewProgressRepository))
	must(c.Provide(inmemdb.NewSessionRepository))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(user.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(newProgressService))
	must(c.Provide(session.NewService))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
