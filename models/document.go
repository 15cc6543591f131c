package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meta holds the fields shared by every owned document: identity, owner
// reference and timestamps. Embedded inline so the stored layout stays flat.
type Meta struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (m *Meta) DocumentID() primitive.ObjectID { return m.ID }

func (m *Meta) OwnerID() primitive.ObjectID { return m.User }

func (m *Meta) SetID(id primitive.ObjectID) { m.ID = id }

func (m *Meta) SetOwner(owner primitive.ObjectID) { m.User = owner }

// Touch updates the modification timestamp, setting the creation timestamp
// too on the first write.
func (m *Meta) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// Stamp sets both timestamps unconditionally. Used at creation so a payload
// carrying its own createdAt cannot survive.
func (m *Meta) Stamp(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Document is what the generic resource service needs from a stored type.
// The identity and timestamp methods come from the embedded Meta; Normalize
// and Validate are supplied by each kind.
type Document interface {
	DocumentID() primitive.ObjectID
	OwnerID() primitive.ObjectID
	SetID(id primitive.ObjectID)
	SetOwner(owner primitive.ObjectID)
	Touch(now time.Time)
	Stamp(now time.Time)
	Normalize()
	Validate() error
}
