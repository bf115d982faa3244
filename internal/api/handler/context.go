package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stockcontrol/inventory-api/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware. Its
// presence proves the middleware ran; handlers on gated routes fail fast
// with 401 when it is missing.
func ctxIdentity(c echo.Context) (middleware.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return identity, nil
}

// pathID parses the :id route parameter as a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
