package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

// Gate is a request predicate; a non nil error stops the request.
type Gate func(ctx echo.Context) error

// guard runs gates left to right before the handler.
func guard(gates ...Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			for _, gate := range gates {
				if err := gate(ctx); err != nil {
					return err
				}
			}
			return next(ctx)
		}
	}
}

func (a *authenticator) authenticated(ctx echo.Context) error {
	_, err := a.contextSession(ctx)
	return err
}

func (a *authenticator) hasRole(role string) Gate {
	return func(ctx echo.Context) error {
		usr, err := a.contextUser(ctx)
		if err != nil {
			switch errors.Cause(err) {
			case user.ErrNotFound:
				return errForbidden
			case errUnauthorized:
				return errUnauthorized
			}
			return errors.Wrap(err, "getting context user")
		}
		if !usr.HasRole(role) {
			return errForbidden
		}
		return nil
	}
}

func (a *authenticator) authOnly() echo.MiddlewareFunc {
	return guard(a.authenticated)
}

func (a *authenticator) teacherOnly() echo.MiddlewareFunc {
	return guard(a.authenticated, a.hasRole(user.RoleTeacher))
}

func (a *authenticator) adminOnly() echo.MiddlewareFunc {
	return guard(a.authenticated, a.hasRole(user.RoleAdmin))
}
