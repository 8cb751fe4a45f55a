// Package memory provides in-process listing and transaction stores with the
// same contracts as the Postgres repositories. They back local runs
// (LISTING_STORE=memory) and the engine's concurrency tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/honeynil/BlackMarketService/internal/repository"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
)

// availability lets tests simulate a lost connection.
type availability struct {
	down atomic.Bool
}

// SetAvailable toggles whether operations fail with ErrStoreUnavailable.
func (a *availability) SetAvailable(ok bool) {
	a.down.Store(!ok)
}

func (a *availability) check(op string) error {
	if a.down.Load() {
		return fmt.Errorf("%s: %w", op, pkgerrors.ErrStoreUnavailable)
	}
	return nil
}

type ListingStore struct {
	availability
	mu       sync.Mutex
	listings map[string]models.Listing
	order    []string
}

func NewListingStore() *ListingStore {
	return &ListingStore{listings: map[string]models.Listing{}}
}

func (s *ListingStore) Create(_ context.Context, listing *models.Listing) (string, error) {
	if err := s.check("create listing"); err != nil {
		return "", err
	}
	if err := repository.ValidateListing(listing); err != nil {
		return "", err
	}

	l := listing.Clone()
	l.ID = uuid.NewString()
	l.Version = 0
	if l.Tier == "" {
		l.Tier = models.TierNormal
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.listings[l.ID] = l
	s.order = append(s.order, l.ID)
	s.mu.Unlock()

	*listing = l.Clone()
	return l.ID, nil
}

func (s *ListingStore) GetAll(_ context.Context, tier *models.Tier) ([]models.Listing, error) {
	if err := s.check("get listings"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Listing, 0, len(s.listings))
	for _, id := range s.order {
		l := s.listings[id]
		if tier != nil && l.Tier != *tier {
			continue
		}
		out = append(out, l.Clone())
	}
	return out, nil
}

func (s *ListingStore) GetByID(_ context.Context, id string) (*models.Listing, error) {
	if err := s.check("get listing by id"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, pkgerrors.ErrListingNotFound
	}
	c := l.Clone()
	return &c, nil
}

func (s *ListingStore) CompareAndSwap(_ context.Context, id string, expectedVersion int64, mutate func(*models.Listing) error) (*models.Listing, bool, error) {
	if err := s.check("compare and swap listing"); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.listings[id]
	if !ok || current.Version != expectedVersion {
		return nil, false, nil
	}

	next := current.Clone()
	if err := mutate(&next); err != nil {
		return nil, false, err
	}
	if !next.Price.IsPositive() || !next.Tier.Valid() {
		return nil, false, fmt.Errorf("%w: mutation produced price %s tier %q", pkgerrors.ErrInvalidInput, next.Price, next.Tier)
	}

	current.Price = next.Price
	current.Tier = next.Tier
	current.Version++
	s.listings[id] = current

	out := current.Clone()
	return &out, true, nil
}

func (s *ListingStore) Delete(_ context.Context, id string, expectedVersion int64) (*models.Listing, bool, error) {
	if err := s.check("delete listing"); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.listings[id]
	if !ok || current.Version != expectedVersion {
		return nil, false, nil
	}

	delete(s.listings, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &current, true, nil
}

// Len reports how many listings are stored.
func (s *ListingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listings)
}
