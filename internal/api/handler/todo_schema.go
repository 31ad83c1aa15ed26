package handler

import (
	"time"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

type addTodoRequest struct {
	Task    string    `json:"task" validate:"required"`
	DueDate time.Time `json:"due_date" validate:"required"`
}

type editTodoRequest struct {
	Task string `json:"task"`
}

// todoResponse decorates the stored todo with its urgency verdict so
// clients can render the badge without re-implementing the date math.
type todoResponse struct {
	ID           int64     `json:"id"`
	Task         string    `json:"task"`
	DueDate      time.Time `json:"due_date"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	Urgency      string    `json:"urgency,omitempty"`
	Badge        string    `json:"badge,omitempty"`
	DaysUntilDue int       `json:"days_until_due"`
}

type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
	Count int            `json:"count"`
}

func toTodoResponse(t domain.Todo, now time.Time) todoResponse {
	resp := todoResponse{
		ID:        t.ID,
		Task:      t.Task,
		DueDate:   t.DueDate,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
	cls := domain.ClassifyDue(t.DueDate, now)
	resp.DaysUntilDue = cls.DaysUntilDue
	if !t.Completed {
		resp.Urgency = string(cls.Urgency)
		resp.Badge = cls.Badge()
	}
	return resp
}
