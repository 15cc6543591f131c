package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/models"
)

// Store is the document-store surface one resource kind needs. Mutating
// writes filter on both id and owner, so a document deleted or re-owned
// between the ownership read and the write reports ErrNotFound instead of
// overwriting foreign state.
type Store[T any] interface {
	// FindByOwner returns every document owned by owner, in the kind's
	// default order.
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*T, error)
	// FindByID returns models.ErrNotFound when no document has the id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Insert(ctx context.Context, doc *T) error
	// Replace overwrites the document matching both id and owner.
	Replace(ctx context.Context, id, owner primitive.ObjectID, doc *T) error
	// Delete removes the document matching both id and owner.
	Delete(ctx context.Context, id, owner primitive.ObjectID) error
}

// UserStore persists accounts for the authentication module.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}
