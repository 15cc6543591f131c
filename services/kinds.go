package services

import (
	"go.mongodb.org/mongo-driver/bson"

	"task-manager/backend/models"
)

// Patch is a partial update payload for a resource kind. Applying it copies
// only the fields present in the payload onto the stored document.
type Patch[T any] interface {
	Apply(doc *T)
}

// Kind describes one resource kind to the generic service and handler:
// display names for messages, the collection it lives in, its default list
// order and how to build an empty update patch.
type Kind[T any] struct {
	Name       string // singular, lowercase
	Display    string // singular, for response messages
	Collection string
	Sort       bson.D
	NewPatch   func() Patch[T]
}

var TaskKind = Kind[models.Task]{
	Name:       "task",
	Display:    "Task",
	Collection: "tasks",
	Sort:       bson.D{{Key: "createdAt", Value: -1}},
	NewPatch:   func() Patch[models.Task] { return &models.TaskPatch{} },
}

var TodoKind = Kind[models.Todo]{
	Name:       "todo",
	Display:    "Todo",
	Collection: "todos",
	Sort:       bson.D{{Key: "createdAt", Value: -1}},
	NewPatch:   func() Patch[models.Todo] { return &models.TodoPatch{} },
}

// Schedules list in chronological order rather than by recency.
var ScheduleKind = Kind[models.Schedule]{
	Name:       "schedule",
	Display:    "Schedule",
	Collection: "schedules",
	Sort:       bson.D{{Key: "startTime", Value: 1}},
	NewPatch:   func() Patch[models.Schedule] { return &models.SchedulePatch{} },
}

var ShoppingListKind = Kind[models.ShoppingList]{
	Name:       "shopping list",
	Display:    "Shopping list",
	Collection: "shoppinglists",
	Sort:       bson.D{{Key: "createdAt", Value: -1}},
	NewPatch:   func() Patch[models.ShoppingList] { return &models.ShoppingListPatch{} },
}
