package session

import (
	"errors"
	"sync"
	"time"

	"github.com/restoreco/claimscope/pkg/models/domain"
)

// ErrNoRecord is returned when no claim record exists for the id:
// direct navigation, an expired session, or an explicit start-over.
var ErrNoRecord = errors.New("no claim record for session")

// DefaultTTL matches one working session over a claim document.
const DefaultTTL = 2 * time.Hour

type entry struct {
	record  domain.ClaimRecord
	expires time.Time
}

// Store holds one ClaimRecord per wizard session, in memory only.
// Records live for the TTL since their last write and vanish with the
// process; the system deliberately has no durable claim persistence.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:   ttl,
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Put stores the record under its own id, resetting its TTL.
func (s *Store) Put(record domain.ClaimRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.items[record.ID] = entry{record: record, expires: s.now().Add(s.ttl)}
}

// Get returns a deep copy of the stored record.
func (s *Store) Get(claimID string) (domain.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[claimID]
	if !ok || s.now().After(e.expires) {
		delete(s.items, claimID)
		return domain.ClaimRecord{}, ErrNoRecord
	}
	return e.record.Clone(), nil
}

// Replace applies an update function to the stored record atomically
// and stores the result, refreshing the TTL. The update function
// receives a copy; returning an error leaves the store unchanged.
func (s *Store) Replace(claimID string, update func(domain.ClaimRecord) (domain.ClaimRecord, error)) (domain.ClaimRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[claimID]
	if !ok || s.now().After(e.expires) {
		delete(s.items, claimID)
		return domain.ClaimRecord{}, ErrNoRecord
	}

	updated, err := update(e.record.Clone())
	if err != nil {
		return domain.ClaimRecord{}, err
	}
	updated.ID = claimID

	s.items[claimID] = entry{record: updated, expires: s.now().Add(s.ttl)}
	return updated.Clone(), nil
}

// Delete is the explicit start-over: the record is dropped and the
// next page load redirects to the entry stage.
func (s *Store) Delete(claimID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, claimID)
}

func (s *Store) purgeLocked() {
	now := s.now()
	for id, e := range s.items {
		if now.After(e.expires) {
			delete(s.items, id)
		}
	}
}
