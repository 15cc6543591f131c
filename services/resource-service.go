package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/models"
	"task-manager/backend/repositories"
)

// ResourceService is the ownership-scoped access controller, instantiated
// once per resource kind. A user can only observe or mutate documents they
// own; the existence check runs before the ownership check, so probing a
// valid id owned by someone else yields ErrForbidden rather than
// ErrNotFound.
type ResourceService[T any, P interface {
	*T
	models.Document
}] struct {
	kind  Kind[T]
	store repositories.Store[T]
}

func NewResourceService[T any, P interface {
	*T
	models.Document
}](kind Kind[T], store repositories.Store[T]) *ResourceService[T, P] {
	return &ResourceService[T, P]{kind: kind, store: store}
}

func (s *ResourceService[T, P]) Kind() Kind[T] {
	return s.kind
}

// List returns every document the owner has, in the kind's default order.
func (s *ResourceService[T, P]) List(ctx context.Context, owner primitive.ObjectID) ([]*T, error) {
	return s.store.FindByOwner(ctx, owner)
}

// Get loads one document, enforcing existence then ownership.
func (s *ResourceService[T, P]) Get(ctx context.Context, owner, id primitive.ObjectID) (*T, error) {
	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if P(doc).OwnerID() != owner {
		return nil, models.ErrForbidden
	}
	return doc, nil
}

// Create persists a new document owned by owner, with defaults applied and
// required fields validated. The owner and identity come from the server,
// never from the payload.
func (s *ResourceService[T, P]) Create(ctx context.Context, owner primitive.ObjectID, doc *T) (*T, error) {
	d := P(doc)
	d.SetID(primitive.NewObjectID())
	d.SetOwner(owner)
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	// Millisecond precision matches what the document store keeps.
	d.Stamp(time.Now().UTC().Truncate(time.Millisecond))

	if err := s.store.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Update merges a partial payload into the stored document and re-runs
// validation. The write is conditional on id and owner, so a document that
// vanished or changed hands since the read reports ErrNotFound.
func (s *ResourceService[T, P]) Update(ctx context.Context, owner, id primitive.ObjectID, patch Patch[T]) (*T, error) {
	doc, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(doc)
	d := P(doc)
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.Touch(time.Now().UTC().Truncate(time.Millisecond))

	if err := s.store.Replace(ctx, id, owner, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete permanently removes the document. Deleting twice reports
// ErrNotFound the second time.
func (s *ResourceService[T, P]) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id, owner)
}
