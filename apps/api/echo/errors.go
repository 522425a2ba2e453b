package echoapi

import (
	"net/http"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AnnonDomini/Exam-Bombers-V1/core"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	errForbidden          = echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	errInvalidCredentials = echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")

	notFoundErrs = []error{user.ErrNotFound, course.ErrSubjectNotFound, course.ErrTopicNotFound, progress.ErrNotFound}
)

// invalidRequest is a 400 carrying the message shown to the client; err holds the field errors, if any.
type invalidRequest struct {
	message string
	err     error
}

func (ir *invalidRequest) Error() string {
	return ir.message + ": " + ir.err.Error()
}

func invalid(msg string, err error) error {
	return &invalidRequest{message: msg, err: err}
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
	Debug   string            `json:"debug,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	fieldErrors := func(err error) (string, map[string]string) {
		switch origErr := errors.Cause(err).(type) {
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			return joinFieldErrors(fldErrs), fldErrs
		case *core.ValidationError:
			var fldErrs map[string]string
			if origErr.Fields != nil {
				fldErrs = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
			}
			msg := origErr.Error()
			if msg == "" {
				msg = joinFieldErrors(fldErrs)
			}
			return capitalize(msg), fldErrs
		case *echo.HTTPError:
			if m, ok := origErr.Message.(string); ok {
				return m, nil
			}
		}
		return "", nil
	}

	return func(err error, ctx echo.Context) {
		var resp errorResponse
		var code int

		cause := errors.Cause(err)
		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				resp.Message = m
			} else {
				resp.Message = http.StatusText(code)
			}
		case *invalidRequest:
			code = http.StatusBadRequest
			resp.Message = origErr.message
			_, resp.Errors = fieldErrors(origErr.err)
		case validator.ValidationErrors, *core.ValidationError:
			code = http.StatusBadRequest
			resp.Message, resp.Errors = fieldErrors(origErr)
		default:
			if isNotFound(cause) {
				code = http.StatusNotFound
				resp.Message = capitalize(cause.Error())
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(code)
			resp.Message = msg

			if usr, ok := ctx.Get(ctxUserKey).(user.User); ok {
				logger.Error(msg, errors.Wrap(err, msg), usr)
			} else {
				logger.Error(msg, errors.Wrap(err, msg))
			}
			if ctx.Echo().Debug {
				resp.Debug = err.Error()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func isNotFound(err error) bool {
	for _, nfErr := range notFoundErrs {
		if err == nfErr {
			return true
		}
	}
	return false
}

// joinFieldErrors renders field errors as one sentence, ordered by field name.
func joinFieldErrors(fldErrs map[string]string) string {
	if len(fldErrs) == 0 {
		return http.StatusText(http.StatusBadRequest)
	}
	fields := make([]string, 0, len(fldErrs))
	for fld := range fldErrs {
		fields = append(fields, fld)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, fld := range fields {
		msgs = append(msgs, fld+": "+fldErrs[fld])
	}
	return strings.Join(msgs, "; ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
