package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxOwnerID extracts the user id injected by the Auth middleware and
// performs a fast-fail check before any service call: a present but empty
// id means the JWT is structurally valid but operationally unusable.
func ctxOwnerID(c echo.Context) (string, error) {
	ownerID, _ := c.Get("user_id").(string)
	if ownerID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ownerID, nil
}
