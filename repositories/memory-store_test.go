package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/models"
)

func newStoredTodo(owner primitive.ObjectID, title string) *models.Todo {
	todo := &models.Todo{Title: title}
	todo.SetID(primitive.NewObjectID())
	todo.SetOwner(owner)
	todo.Stamp(time.Now().UTC())
	return todo
}

func TestConditionalWritesMatchIDAndOwner(t *testing.T) {
	// Mutating writes filter on both id and owner, so a stale read cannot
	// overwrite or remove a document the requester no longer owns.
	store := NewMemoryStore[models.Todo, *models.Todo](nil)
	ctx := context.Background()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	todo := newStoredTodo(owner, "original")
	if err := store.Insert(ctx, todo); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	hijacked := newStoredTodo(stranger, "hijacked")
	hijacked.SetID(todo.ID)
	if err := store.Replace(ctx, todo.ID, stranger, hijacked); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Replace() with wrong owner error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, todo.ID, stranger); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() with wrong owner error = %v, want ErrNotFound", err)
	}

	got, err := store.FindByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Title != "original" {
		t.Errorf("title = %q, want %q", got.Title, "original")
	}
}

func TestStoreReturnsIsolatedCopies(t *testing.T) {
	store := NewMemoryStore[models.Todo, *models.Todo](nil)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	todo := newStoredTodo(owner, "stable")
	if err := store.Insert(ctx, todo); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	first, err := store.FindByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	first.Title = "mutated by caller"

	second, err := store.FindByID(ctx, todo.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if second.Title != "stable" {
		t.Errorf("title = %q, caller mutation reached the store", second.Title)
	}
}
