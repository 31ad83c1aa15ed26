package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fadilarbi/todo-offline/internal/core/domain"
)

const todoCollection = "user_todos"

// MongoTodoRepository stores one document per owner holding that owner's
// whole list, matching the read-whole/write-whole contract of the port.
type MongoTodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *MongoTodoRepository {
	return &MongoTodoRepository{coll: db.Collection(todoCollection)}
}

type mongoTodo struct {
	ID        int64  `bson:"id"`
	Task      string `bson:"task"`
	DueDate   int64  `bson:"due_date"`
	Completed bool   `bson:"completed"`
	CreatedAt int64  `bson:"created_at"`
	OwnerID   string `bson:"owner_id"`
}

type mongoTodoList struct {
	OwnerID string      `bson:"_id"`
	Todos   []mongoTodo `bson:"todos"`
}

func (r *MongoTodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	var doc mongoTodoList
	if err := r.coll.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]domain.Todo, 0, len(doc.Todos))
	for _, mt := range doc.Todos {
		todos = append(todos, domain.Todo{
			ID:        mt.ID,
			Task:      mt.Task,
			DueDate:   unixToTime(mt.DueDate),
			Completed: mt.Completed,
			CreatedAt: unixToTime(mt.CreatedAt),
			OwnerID:   mt.OwnerID,
		})
	}
	return todos, nil
}

func (r *MongoTodoRepository) SaveList(ctx context.Context, ownerID string, todos []domain.Todo) error {
	doc := mongoTodoList{OwnerID: ownerID, Todos: make([]mongoTodo, 0, len(todos))}
	for _, t := range todos {
		doc.Todos = append(doc.Todos, mongoTodo{
			ID:        t.ID,
			Task:      t.Task,
			DueDate:   t.DueDate.Unix(),
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.Unix(),
			OwnerID:   t.OwnerID,
		})
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ownerID}, doc, opts); err != nil {
		return fmt.Errorf("save todos: %w", err)
	}
	return nil
}
