package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShoppingItem is a nested sub-document: it has its own identity but no
// lifecycle outside its parent list.
type ShoppingItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Purchased bool               `bson:"purchased" json:"purchased"`
}

type ShoppingList struct {
	Meta  `bson:",inline"`
	Title string         `bson:"title" json:"title"`
	Items []ShoppingItem `bson:"items" json:"items"`
}

// Normalize trims names, defaults quantities and assigns identities to
// items that arrived without one.
func (l *ShoppingList) Normalize() {
	l.Title = strings.TrimSpace(l.Title)
	for i := range l.Items {
		item := &l.Items[i]
		item.Name = strings.TrimSpace(item.Name)
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
	}
}

func (l *ShoppingList) Validate() error {
	if l.Title == "" {
		return requiredField("title", "Please provide a shopping list title")
	}
	for _, item := range l.Items {
		if item.Name == "" {
			return requiredField("items.name", "Please provide an item name")
		}
	}
	return nil
}

// ShoppingListPatch replaces the item sequence wholesale when present.
// There is no item-level endpoint: toggling one item's purchased flag means
// submitting the full modified sequence.
type ShoppingListPatch struct {
	Title *string         `json:"title"`
	Items *[]ShoppingItem `json:"items"`
}

func (p *ShoppingListPatch) Apply(l *ShoppingList) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Items != nil {
		l.Items = *p.Items
	}
}
