// Package store holds the in-memory view of pending and published products.
// The external id is unique across both buckets; an ingested item whose
// external id is already known is dropped, never duplicated.
package store

import (
	"sort"
	"sync"
	"time"

	"catalog-sync/internal/catalog"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	byExternal map[string]catalog.Product
	byLocal    map[string]string // local id -> external id
	lastSync   map[string]time.Time
}

func New() *Store {
	return &Store{
		byExternal: make(map[string]catalog.Product),
		byLocal:    make(map[string]string),
		lastSync:   make(map[string]time.Time),
	}
}

// Add inserts a product unless its external id is already present. The local
// id is assigned at ingestion when the feed did not provide one, and
// CreatedAt is stamped once.
func (s *Store) Add(p catalog.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(p)
}

// AddBatch inserts each product, dropping duplicates, and returns the
// survivors as stored.
func (s *Store) AddBatch(batch []catalog.Product) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]catalog.Product, 0, len(batch))
	for _, p := range batch {
		if s.add(p) {
			added = append(added, s.byExternal[catalog.NormalizeExternalID(p.ExternalID)])
		}
	}
	return added
}

func (s *Store) add(p catalog.Product) bool {
	extID := catalog.NormalizeExternalID(p.ExternalID)
	if extID == "" {
		return false
	}
	if _, exists := s.byExternal[extID]; exists {
		return false
	}

	p.ExternalID = extID
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	s.byExternal[extID] = p
	s.byLocal[p.ID] = extID
	return true
}

// Get looks a product up by its external id.
func (s *Store) Get(externalID string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byExternal[catalog.NormalizeExternalID(externalID)]
	return p, ok
}

// GetByID looks a product up by its locally assigned id.
func (s *Store) GetByID(id string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	extID, ok := s.byLocal[id]
	if !ok {
		return catalog.Product{}, false
	}
	p, ok := s.byExternal[extID]
	return p, ok
}

// Published returns a snapshot of the published bucket.
func (s *Store) Published() []catalog.Product {
	return s.list(true)
}

// Pending returns a snapshot of the pending bucket.
func (s *Store) Pending() []catalog.Product {
	return s.list(false)
}

func (s *Store) list(published bool) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Product, 0, len(s.byExternal))
	for _, p := range s.byExternal {
		if p.PublishStatus == published {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, p := range s.byExternal {
		if !p.PublishStatus {
			count++
		}
	}
	return count
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byExternal)
}

// SetDisplayQuantity records a confirmed reconciliation for one external id.
func (s *Store) SetDisplayQuantity(externalID string, qty int, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	extID := catalog.NormalizeExternalID(externalID)
	p, ok := s.byExternal[extID]
	if !ok {
		return false
	}
	p.DisplayQuantity = qty
	s.byExternal[extID] = p
	s.lastSync[extID] = at
	return true
}

// LastSyncAt reports when the given external id was last reconciled locally.
func (s *Store) LastSyncAt(externalID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.lastSync[catalog.NormalizeExternalID(externalID)]
	return at, ok
}

// MarkPublished flips the given local ids from pending to published and
// returns the ids actually moved. Unknown or already published ids are
// ignored.
func (s *Store) MarkPublished(ids []string) []string {
	return s.setPublishStatus(ids, true)
}

// MarkUnpublished is the inverse of MarkPublished; the record itself is kept.
func (s *Store) MarkUnpublished(ids []string) []string {
	return s.setPublishStatus(ids, false)
}

func (s *Store) setPublishStatus(ids []string, published bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := make([]string, 0, len(ids))
	for _, id := range ids {
		extID, ok := s.byLocal[id]
		if !ok {
			continue
		}
		p := s.byExternal[extID]
		if p.PublishStatus == published {
			continue
		}
		p.PublishStatus = published
		s.byExternal[extID] = p
		moved = append(moved, id)
	}
	return moved
}
