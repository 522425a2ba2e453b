package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// paramID parses the `:id` path param; a malformed id is reported as notFound.
func paramID(ctx echo.Context, notFound error) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}
