package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
)

const (
	msgInvalidSubject = "Invalid subject data"
	msgInvalidTopic   = "Invalid topic data"
)

type subjectApi struct {
	svc      course.Service
	auth     *authenticator
	validate *validator.Validate
}

func registerSubjectAPI(g *echo.Group, auth *authenticator, svc course.Service, validate *validator.Validate) {
	api := subjectApi{
		svc:      svc,
		auth:     auth,
		validate: validate,
	}

	teacher := auth.teacherOnly()

	sg := g.Group("/subjects")
	sg.GET("", api.query)
	sg.POST("", api.create, teacher)
	sg.GET("/:id", api.retrieve)
	sg.GET("/:id/topics", api.queryTopics)
	sg.POST("/:id/topics", api.createTopic, teacher)

	g.GET("/teacher/subjects", api.queryTeacherSubjects, teacher)
}

// Handlers

func (api *subjectApi) query(ctx echo.Context) error {
	subjects, err := api.svc.QuerySubjects()
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data course.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return invalid(msgInvalidSubject, err)
	}
	if err := data.Validate(api.validate); err != nil {
		return invalid(msgInvalidSubject, err)
	}

	teacherID, err := api.auth.contextUserID(ctx)
	if err != nil {
		return err
	}
	subj, err := api.svc.CreateSubject(teacherID, data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subj)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrSubjectNotFound)
	if err != nil {
		return err
	}
	subj, err := api.svc.GetSubject(id)
	if err != nil {
		return errors.Wrap(err, "finding subject by ID")
	}
	return ctx.JSON(http.StatusOK, subj)
}

func (api *subjectApi) queryTopics(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrSubjectNotFound)
	if err != nil {
		return err
	}
	topics, err := api.svc.QueryTopics(id)
	if err != nil {
		return errors.Wrap(err, "querying topics")
	}
	return ctx.JSON(http.StatusOK, topics)
}

func (api *subjectApi) createTopic(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrSubjectNotFound)
	if err != nil {
		return err
	}

	var data course.NewTopic
	if err = ctx.Bind(&data); err != nil {
		return invalid(msgInvalidTopic, err)
	}
	if err = data.Validate(api.validate); err != nil {
		return invalid(msgInvalidTopic, err)
	}

	teacherID, err := api.auth.contextUserID(ctx)
	if err != nil {
		return err
	}
	topic, err := api.svc.CreateTopic(id, teacherID, data)
	if err != nil {
		return errors.Wrap(err, "creating topic")
	}
	return ctx.JSON(http.StatusCreated, topic)
}

func (api *subjectApi) queryTeacherSubjects(ctx echo.Context) error {
	teacherID, err := api.auth.contextUserID(ctx)
	if err != nil {
		return err
	}
	subjects, err := api.svc.QueryTeacherSubjects(teacherID)
	if err != nil {
		return errors.Wrap(err, "querying teacher subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}
