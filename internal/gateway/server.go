package gateway

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

type clickResponse struct {
	Open bool   `json:"open"`
	Path string `json:"path,omitempty"`
}

type stateResponse struct {
	State             State  `json:"state"`
	Version           string `json:"version"`
	StaticGeneration  string `json:"static_generation"`
	DynamicGeneration string `json:"dynamic_generation"`
}

// NewServer mounts the controller behind an Echo instance: the control
// surface under /sw, everything else through fetch interception.
func NewServer(ctrl *Controller) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	e.POST("/sw/message", handleMessage(ctrl))
	e.POST("/sw/sync", handleSync(ctrl))
	e.POST("/sw/push", handlePush(ctrl))
	e.POST("/sw/notification-click", handleNotificationClick(ctrl))
	e.GET("/sw/state", handleState(ctrl))

	e.Any("/*", echo.WrapHandler(ctrl))

	return e
}

func handleMessage(ctrl *Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			Type string `json:"type"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		replyCh := make(chan Reply, 1)
		ctrl.HandleMessage(c.Request().Context(), Message{Type: req.Type, Reply: replyCh})
		return c.JSON(http.StatusOK, <-replyCh)
	}
}

func handleSync(ctrl *Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		tag := c.QueryParam("tag")
		if tag == "" {
			tag = SyncTagTodos
		}
		ctrl.Sync(c.Request().Context(), tag)
		return c.JSON(http.StatusAccepted, map[string]string{"status": "ok", "tag": tag})
	}
}

func handlePush(ctrl *Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload, err := io.ReadAll(c.Request().Body)
		if err != nil {
			payload = nil
		}
		n := ctrl.Push(c.Request().Context(), payload)
		return c.JSON(http.StatusOK, n)
	}
}

func handleNotificationClick(ctrl *Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			Action string `json:"action"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		path, open := ctrl.NotificationClick(req.Action)
		return c.JSON(http.StatusOK, clickResponse{Open: open, Path: path})
	}
}

func handleState(ctrl *Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, stateResponse{
			State:             ctrl.State(),
			Version:           ctrl.Version(),
			StaticGeneration:  ctrl.StaticGeneration(),
			DynamicGeneration: ctrl.DynamicGeneration(),
		})
	}
}
