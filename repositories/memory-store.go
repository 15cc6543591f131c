package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-manager/backend/models"
)

// MemoryStore is an in-memory Store used by tests. Documents are cloned
// through a bson round trip on the way in and out, which also mirrors
// MongoDB's millisecond timestamp precision.
type MemoryStore[T any, P interface {
	*T
	models.Document
}] struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]*T
	less func(a, b *T) bool
}

// NewMemoryStore builds an empty store. less defines the kind's default
// list order; nil leaves results unsorted.
func NewMemoryStore[T any, P interface {
	*T
	models.Document
}](less func(a, b *T) bool) *MemoryStore[T, P] {
	return &MemoryStore[T, P]{docs: make(map[primitive.ObjectID]*T), less: less}
}

func clone[T any](doc *T) *T {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("memory store: marshal: %v", err))
	}
	out := new(T)
	if err := bson.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("memory store: unmarshal: %v", err))
	}
	return out
}

func (s *MemoryStore[T, P]) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []*T
	for _, doc := range s.docs {
		if P(doc).OwnerID() == owner {
			docs = append(docs, clone(doc))
		}
	}
	if s.less != nil {
		sort.Slice(docs, func(i, j int) bool { return s.less(docs[i], docs[j]) })
	}
	return docs, nil
}

func (s *MemoryStore[T, P]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return clone(doc), nil
}

func (s *MemoryStore[T, P]) Insert(ctx context.Context, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[P(doc).DocumentID()] = clone(doc)
	return nil
}

func (s *MemoryStore[T, P]) Replace(ctx context.Context, id, owner primitive.ObjectID, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[id]
	if !ok || P(existing).OwnerID() != owner {
		return models.ErrNotFound
	}
	s.docs[id] = clone(doc)
	return nil
}

func (s *MemoryStore[T, P]) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[id]
	if !ok || P(existing).OwnerID() != owner {
		return models.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// MemoryUserStore is the test double for the users collection.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	u := *user
	return &u, nil
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate email: %s", user.Email)
		}
	}
	u := *user
	s.users[user.ID] = &u
	return nil
}
