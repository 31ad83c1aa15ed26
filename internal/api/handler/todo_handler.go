package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fadilarbi/todo-offline/internal/api/metrics"
	"github.com/fadilarbi/todo-offline/internal/core/domain"
	"github.com/fadilarbi/todo-offline/internal/core/ports"
)

// TodoHandler handles HTTP requests for task operations. Every route is
// behind the Auth middleware; the owner id comes from the token claims.
type TodoHandler struct {
	service ports.TodoService
	now     func() time.Time
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service, now: time.Now}
}

// List handles GET /todos?filter=all|completed|pending.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        filter  query     string  false  "Filter view"  Enums(all, completed, pending)
// @Success      200     {object}  todoListResponse
// @Failure      401     {object}  map[string]string
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	mode := domain.ParseFilter(c.QueryParam("filter"))
	todos, err := h.service.List(c.Request().Context(), ownerID, mode)
	if err != nil {
		return err
	}

	now := h.now()
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t, now))
	}
	return c.JSON(http.StatusOK, todoListResponse{Todos: out, Count: len(out)})
}

// Add handles POST /todos.
//
// @Summary      Add a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addTodoRequest  true  "Task and due date"
// @Success      201   {object}  todoResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Add(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	var req addTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.service.Add(c.Request().Context(), ownerID, req.Task, req.DueDate)
	if err != nil {
		return err
	}

	metrics.TodosMutatedTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, toTodoResponse(*todo, h.now()))
}

// Toggle handles PATCH /todos/:id/toggle. Toggling an id that no longer
// exists is a no-op, not an error.
//
// @Summary      Toggle a todo's completed flag
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Success      204  "Todo no longer exists"
// @Failure      401  {object}  map[string]string
// @Router       /todos/{id}/toggle [patch]
func (h *TodoHandler) Toggle(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}
	id, err := todoIDParam(c)
	if err != nil {
		return err
	}

	todo, err := h.service.ToggleComplete(c.Request().Context(), ownerID, id)
	if err != nil {
		return err
	}
	if todo == nil {
		return c.NoContent(http.StatusNoContent)
	}

	metrics.TodosMutatedTotal.WithLabelValues("toggle").Inc()
	return c.JSON(http.StatusOK, toTodoResponse(*todo, h.now()))
}

// Edit handles PATCH /todos/:id. A blank task leaves the todo unchanged.
//
// @Summary      Edit a todo's task text
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Todo id"
// @Param        body  body      editTodoRequest  true  "Replacement text"
// @Success      200   {object}  todoResponse
// @Success      204   "Todo no longer exists"
// @Failure      401   {object}  map[string]string
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Edit(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}
	id, err := todoIDParam(c)
	if err != nil {
		return err
	}

	var req editTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	todo, err := h.service.Edit(c.Request().Context(), ownerID, id, req.Task)
	if err != nil {
		return err
	}
	if todo == nil {
		return c.NoContent(http.StatusNoContent)
	}

	metrics.TodosMutatedTotal.WithLabelValues("edit").Inc()
	return c.JSON(http.StatusOK, toTodoResponse(*todo, h.now()))
}

// Delete handles DELETE /todos/:id.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id"
// @Success      204  "Deleted"
// @Failure      401  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}
	id, err := todoIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ownerID, id); err != nil {
		return err
	}

	metrics.TodosMutatedTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll handles DELETE /todos?confirm=true. Without the confirm flag
// the service refuses; the confirmation step lives in the contract.
//
// @Summary      Delete all todos
// @Tags         todos
// @Security     BearerAuth
// @Param        confirm  query  bool  true  "Must be true"
// @Success      204  "All todos deleted"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /todos [delete]
func (h *TodoHandler) DeleteAll(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	confirm := c.QueryParam("confirm") == "true"
	if err := h.service.DeleteAll(c.Request().Context(), ownerID, confirm); err != nil {
		return err
	}

	metrics.TodosMutatedTotal.WithLabelValues("delete_all").Inc()
	return c.NoContent(http.StatusNoContent)
}

func todoIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid todo id")
	}
	return id, nil
}
