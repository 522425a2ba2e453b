package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/session"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

const (
	ctxSessionKey = "session"
	ctxUserKey    = "user"
)

var errInvalidSessionToken = errors.New("invalid session token")

// authenticator ties request cookies to server side sessions.
// The cookie holds an HS256 token whose subject is the session id.
type authenticator struct {
	conf     *core.Config
	key      []byte
	sessions session.Service
	users    user.Service
}

func newAuthenticator(conf *core.Config, sessions session.Service, users user.Service) *authenticator {
	return &authenticator{
		conf:     conf,
		key:      []byte(conf.SecretKey),
		sessions: sessions,
		users:    users,
	}
}

func (a *authenticator) signToken(sess session.Session) (string, error) {
	claims := jwt.StandardClaims{
		Issuer:    a.conf.AppName,
		Subject:   sess.ID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: sess.ExpiresAt.Unix(),
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", errors.Wrap(err, "signing session token")
	}
	return ss, nil
}

// parseToken returns the session id of a valid, unexpired token.
func (a *authenticator) parseToken(tokenStr string) (string, error) {
	claims := new(jwt.StandardClaims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSessionToken
		}
		return a.key, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", errInvalidSessionToken
	}
	return claims.Subject, nil
}

func (a *authenticator) setCookie(ctx echo.Context, value string, maxAge int, expires time.Time) {
	ctx.SetCookie(&http.Cookie{
		Name:     a.conf.Session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		Secure:   a.conf.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// login opens a session for usr, replacing the current one, and sets the session cookie.
func (a *authenticator) login(ctx echo.Context, usr user.User) error {
	if sess, err := a.contextSession(ctx); err == nil {
		if err = a.sessions.End(sess.ID); err != nil {
			return errors.Wrap(err, "ending previous session")
		}
	}

	sess, err := a.sessions.Start(usr.ID)
	if err != nil {
		return errors.Wrap(err, "starting session")
	}
	token, err := a.signToken(sess)
	if err != nil {
		return err
	}
	a.setCookie(ctx, token, int(a.conf.Session.Lifetime.Seconds()), sess.ExpiresAt)
	ctx.Set(ctxSessionKey, sess)
	ctx.Set(ctxUserKey, usr)
	return nil
}

// logout destroys the current session, if any, and clears the cookie.
func (a *authenticator) logout(ctx echo.Context) error {
	if sess, err := a.contextSession(ctx); err == nil {
		if err = a.sessions.End(sess.ID); err != nil {
			return errors.Wrap(err, "ending session")
		}
	}
	a.setCookie(ctx, "", -1, time.Unix(0, 0))
	return nil
}

// contextSession returns the live session of the request or errUnauthorized.
func (a *authenticator) contextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(ctxSessionKey).(session.Session); ok {
		return sess, nil
	}

	cookie, err := ctx.Cookie(a.conf.Session.CookieName)
	if err != nil || cookie.Value == "" {
		return session.Session{}, errUnauthorized
	}
	sessID, err := a.parseToken(cookie.Value)
	if err != nil {
		return session.Session{}, errUnauthorized
	}
	sess, err := a.sessions.Resolve(sessID)
	if err != nil {
		if err == session.ErrNotFound || err == session.ErrExpired {
			return session.Session{}, errUnauthorized
		}
		return session.Session{}, errors.Wrap(err, "resolving session")
	}
	ctx.Set(ctxSessionKey, sess)
	return sess, nil
}

// contextUser loads the user of the current session. A deleted or unknown user yields user.ErrNotFound.
func (a *authenticator) contextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(ctxUserKey).(user.User); ok {
		return usr, nil
	}

	sess, err := a.contextSession(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := a.users.GetByID(sess.UserID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(ctxUserKey, usr)
	return usr, nil
}

// contextUserID returns the user id of the current session; callers sit behind the authenticated gate.
func (a *authenticator) contextUserID(ctx echo.Context) (int, error) {
	sess, err := a.contextSession(ctx)
	if err != nil {
		return 0, err
	}
	return sess.UserID, nil
}
