package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
)

const (
	msgInvalidProgress = "Invalid progress data"
	msgInvalidAttempt  = "Invalid attempt data"
)

type progressApi struct {
	svc      progress.Service
	auth     *authenticator
	validate *validator.Validate
}

func registerProgressAPI(g *echo.Group, auth *authenticator, svc progress.Service, validate *validator.Validate) {
	api := progressApi{
		svc:      svc,
		auth:     auth,
		validate: validate,
	}

	authed := auth.authOnly()
	pg := g.Group("/topics/:id")
	pg.GET("/progress", api.retrieve, authed)
	pg.POST("/progress", api.record, authed)
	pg.GET("/progress/history", api.history, authed)
	pg.POST("/attempts", api.attempt, authed)
}

// Handlers

func (api *progressApi) retrieve(ctx echo.Context) error {
	userID, topicID, err := api.ids(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.Get(userID, topicID)
	if err != nil {
		if err == progress.ErrNotFound {
			return ctx.JSON(http.StatusOK, echo.Map{"completed": false, "score": 0})
		}
		return errors.Wrap(err, "finding progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *progressApi) record(ctx echo.Context) error {
	userID, topicID, err := api.ids(ctx)
	if err != nil {
		return err
	}

	var data progress.NewProgress
	if err = ctx.Bind(&data); err != nil {
		return invalid(msgInvalidProgress, err)
	}
	if err = data.Validate(api.validate); err != nil {
		return invalid(msgInvalidProgress, err)
	}

	p, err := api.svc.Record(userID, topicID, data)
	if err != nil {
		return errors.Wrap(err, "recording progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *progressApi) history(ctx echo.Context) error {
	userID, topicID, err := api.ids(ctx)
	if err != nil {
		return err
	}
	records, err := api.svc.History(userID, topicID)
	if err != nil {
		return errors.Wrap(err, "querying progress history")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *progressApi) attempt(ctx echo.Context) error {
	userID, topicID, err := api.ids(ctx)
	if err != nil {
		return err
	}

	var data progress.Attempt
	if err = ctx.Bind(&data); err != nil {
		return invalid(msgInvalidAttempt, err)
	}
	if err = data.Validate(api.validate); err != nil {
		return invalid(msgInvalidAttempt, err)
	}

	res, err := api.svc.Attempt(userID, topicID, data)
	if err != nil {
		return errors.Wrap(err, "grading attempt")
	}
	return ctx.JSON(http.StatusOK, res)
}

// ids returns the session user id and the `:id` topic id.
func (api *progressApi) ids(ctx echo.Context) (userID, topicID int, err error) {
	if topicID, err = paramID(ctx, course.ErrTopicNotFound); err != nil {
		return 0, 0, err
	}
	if userID, err = api.auth.contextUserID(ctx); err != nil {
		return 0, 0, err
	}
	return userID, topicID, nil
}
