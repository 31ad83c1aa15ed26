package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

// NotificationHandler exposes the in-app banner board.
type NotificationHandler struct {
	board ports.BannerBoard
}

func NewNotificationHandler(board ports.BannerBoard) *NotificationHandler {
	return &NotificationHandler{board: board}
}

type bannerListResponse struct {
	Banners []domain.Banner `json:"banners"`
}

// Active handles GET /notifications — the banners not yet expired.
//
// @Summary      Active in-app banners
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  bannerListResponse
// @Router       /notifications [get]
func (h *NotificationHandler) Active(c echo.Context) error {
	banners := h.board.Active()
	if banners == nil {
		banners = []domain.Banner{}
	}
	return c.JSON(http.StatusOK, bannerListResponse{Banners: banners})
}
