package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
)

const msgInvalidQuestion = "Invalid question data"

type topicApi struct {
	svc      course.Service
	auth     *authenticator
	validate *validator.Validate
}

func registerTopicAPI(g *echo.Group, auth *authenticator, svc course.Service, validate *validator.Validate) {
	api := topicApi{
		svc:      svc,
		auth:     auth,
		validate: validate,
	}

	teacher := auth.teacherOnly()

	tg := g.Group("/topics/:id")
	tg.GET("", api.retrieve)
	tg.PATCH("", api.update, teacher)
	tg.GET("/questions", api.queryQuestions)
	tg.POST("/questions", api.createQuestion, teacher)
}

// Handlers

func (api *topicApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrTopicNotFound)
	if err != nil {
		return err
	}
	topic, err := api.svc.GetTopic(id)
	if err != nil {
		return errors.Wrap(err, "finding topic by ID")
	}
	return ctx.JSON(http.StatusOK, topic)
}

func (api *topicApi) update(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrTopicNotFound)
	if err != nil {
		return err
	}
	if _, err = api.svc.GetTopic(id); err != nil {
		return errors.Wrap(err, "finding topic by ID")
	}

	var data course.TopicPatch
	if err = ctx.Bind(&data); err != nil {
		return invalid(msgInvalidTopic, err)
	}
	if err = data.Validate(api.validate); err != nil {
		return invalid(msgInvalidTopic, err)
	}
	if data.TeacherID, err = api.auth.contextUserID(ctx); err != nil {
		return err
	}

	topic, err := api.svc.UpdateTopic(id, data)
	if err != nil {
		return errors.Wrap(err, "updating topic")
	}
	return ctx.JSON(http.StatusOK, topic)
}

func (api *topicApi) queryQuestions(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrTopicNotFound)
	if err != nil {
		return err
	}
	questions, err := api.svc.QueryQuestions(id)
	if err != nil {
		return errors.Wrap(err, "querying questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *topicApi) createQuestion(ctx echo.Context) error {
	id, err := paramID(ctx, course.ErrTopicNotFound)
	if err != nil {
		return err
	}

	var data course.NewQuestion
	if err = ctx.Bind(&data); err != nil {
		return invalid(msgInvalidQuestion, err)
	}
	if err = data.Validate(api.validate); err != nil {
		return invalid(msgInvalidQuestion, err)
	}

	q, err := api.svc.CreateQuestion(id, data)
	if err != nil {
		return errors.Wrap(err, "creating question")
	}
	return ctx.JSON(http.StatusCreated, q)
}
