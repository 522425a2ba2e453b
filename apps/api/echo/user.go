package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

const (
	msgInvalidUser = "Invalid user data"
	msgInvalidRole = "Invalid role"
)

type userApi struct {
	svc      user.Service
	auth     *authenticator
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, auth *authenticator, svc user.Service, validate *validator.Validate) {
	api := userApi{
		svc:      svc,
		auth:     auth,
		validate: validate,
	}

	// un-authed endpoints
	g.POST("/register", api.register)
	g.POST("/login", api.login)
	g.POST("/logout", api.logout)

	// authed endpoints
	g.GET("/me", api.me, auth.authOnly())

	admin := auth.adminOnly()
	ag := g.Group("/admin")
	ag.GET("/users", api.query, admin)
	ag.PATCH("/users/:id/role", api.updateRole, admin)
	ag.GET("/roles", api.queryRoles, admin)
}

// Handlers

func (api *userApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return invalid(msgInvalidUser, err)
	}
	if err := data.Validate(api.validate); err != nil {
		return invalid(msgInvalidUser, err)
	}

	usr, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}

	// auto-login
	if err = api.auth.login(ctx, usr); err != nil {
		return errors.Wrap(err, "logging in")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return invalid(msgInvalidUser, err)
	}
	if err := data.Validate(api.validate); err != nil {
		return invalid(msgInvalidUser, err)
	}

	usr, err := api.svc.Authenticate(data.Username, data.Password)
	if err != nil {
		if err == user.ErrInvalidCredentials {
			return errInvalidCredentials
		}
		return errors.Wrap(err, "authenticating")
	}
	if err = api.auth.login(ctx, usr); err != nil {
		return errors.Wrap(err, "logging in")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) logout(ctx echo.Context) error {
	if err := api.auth.logout(ctx); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

func (api *userApi) me(ctx echo.Context) error {
	usr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) updateRole(ctx echo.Context) error {
	id, err := paramID(ctx, user.ErrNotFound)
	if err != nil {
		return err
	}

	// admins cannot change their own role
	ctxUsr, err := api.auth.contextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if ctxUsr.ID == id {
		return errForbidden
	}

	var data user.UpdateUserRole
	if err = ctx.Bind(&data); err != nil {
		return invalid(msgInvalidRole, err)
	}
	if err = data.Validate(api.validate); err != nil {
		return invalid(msgInvalidRole, err)
	}

	usr, err := api.svc.UpdateRole(id, data.Role)
	if err != nil {
		return errors.Wrap(err, "updating user role")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	MessageResponse struct {
		Message string `json:"message"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username)
	return validate.Struct(lr)
}
