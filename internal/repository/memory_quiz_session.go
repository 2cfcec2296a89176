package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memorySession struct {
	quizID    string
	answers   map[int]string
	expiresAt time.Time
}

// MemoryQuizSessionStore is an in-process store bounded by size (LRU) and age (TTL).
type MemoryQuizSessionStore struct {
	mu         sync.Mutex
	sessions   map[string]*list.Element
	order      *list.List // front = most recently used
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewMemoryQuizSessionStore creates a store holding at most maxEntries quizzes,
// each for at most ttl. Non-positive values disable the corresponding bound.
func NewMemoryQuizSessionStore(maxEntries int, ttl time.Duration) *MemoryQuizSessionStore {
	return &MemoryQuizSessionStore{
		sessions:   make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *MemoryQuizSessionStore) Create(_ context.Context, quizID string, answers map[int]string) error {
	entry := &memorySession{quizID: quizID, answers: copyAnswers(answers)}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.sessions[quizID]; ok {
		el.Value = entry
		s.order.MoveToFront(el)
		return nil
	}

	s.sessions[quizID] = s.order.PushFront(entry)
	for s.maxEntries > 0 && s.order.Len() > s.maxEntries {
		s.removeElement(s.order.Back())
	}
	return nil
}

func (s *MemoryQuizSessionStore) CheckAnswer(_ context.Context, quizID string, questionID int, selected string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(quizID)
	if !ok {
		return false, ErrQuizNotFound
	}
	correct, ok := entry.answers[questionID]
	if !ok {
		return false, ErrQuestionNotFound
	}
	return selected == correct, nil
}

func (s *MemoryQuizSessionStore) RevealAll(_ context.Context, quizID string) (map[int]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookup(quizID)
	if !ok {
		return nil, ErrQuizNotFound
	}
	return copyAnswers(entry.answers), nil
}

// Len reports the number of stored quizzes, expired ones included until swept.
func (s *MemoryQuizSessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Sweep drops every expired quiz and returns how many were removed.
func (s *MemoryQuizSessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.order.Back(); el != nil; {
		prev := el.Prev()
		if s.expired(el.Value.(*memorySession), now) {
			s.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

// StartSweeper calls Sweep every interval until ctx is done.
func (s *MemoryQuizSessionStore) StartSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// lookup must be called with mu held. It drops the entry if it has expired.
func (s *MemoryQuizSessionStore) lookup(quizID string) (*memorySession, bool) {
	el, ok := s.sessions[quizID]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*memorySession)
	if s.expired(entry, s.now()) {
		s.removeElement(el)
		return nil, false
	}
	s.order.MoveToFront(el)
	return entry, true
}

func (s *MemoryQuizSessionStore) expired(entry *memorySession, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

func (s *MemoryQuizSessionStore) removeElement(el *list.Element) {
	s.order.Remove(el)
	delete(s.sessions, el.Value.(*memorySession).quizID)
}

func copyAnswers(src map[int]string) map[int]string {
	dst := make(map[int]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
