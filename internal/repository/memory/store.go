// Package memory provides process-local implementations of the repository
// interfaces. They back the "memory" database driver used for local runs and
// service tests, and follow the same ordering and ownership rules as the
// MongoDB repositories.
package memory

import (
	"sort"
	"sync"
	"time"

	"fittrack/fitness-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind a single lock.
type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users      map[primitive.ObjectID]*record[domain.User]
	plans      map[primitive.ObjectID]*record[domain.WorkoutPlan]
	logs       map[primitive.ObjectID]*record[domain.WorkoutLog]
	exercises  map[primitive.ObjectID]*record[domain.Exercise]
	challenges map[primitive.ObjectID]*record[domain.Challenge]
}

// record remembers insertion order so equal timestamps still sort newest first.
type record[T any] struct {
	seq int64
	val T
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:        func() time.Time { return time.Now().UTC() },
		users:      make(map[primitive.ObjectID]*record[domain.User]),
		plans:      make(map[primitive.ObjectID]*record[domain.WorkoutPlan]),
		logs:       make(map[primitive.ObjectID]*record[domain.WorkoutLog]),
		exercises:  make(map[primitive.ObjectID]*record[domain.Exercise]),
		challenges: make(map[primitive.ObjectID]*record[domain.Challenge]),
	}
}

// SetClock replaces the time source. Tests use it to pin createdAt values.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// next must be called with the write lock held.
func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// newestFirst sorts rows by createdAt descending, then by insertion order descending.
func newestFirst[T any](rows []*record[T], createdAt func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := createdAt(rows[i].val), createdAt(rows[j].val)
		if !a.Equal(b) {
			return a.After(b)
		}
		return rows[i].seq > rows[j].seq
	})
}
