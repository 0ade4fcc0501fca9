package memory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"yisu_hotel/internal/domain"
)

// Store is the in-process hotel and user collection. All reads hand out
// copies; writers never see the store's backing slices. Durability is a
// whole-snapshot round-trip through the injected SnapshotStore.
type Store struct {
	mu     sync.RWMutex
	snap   domain.SnapshotStore
	users  []domain.User
	hotels []domain.Hotel
}

// New returns an empty store. snap may be nil, in which case Persist is a
// no-op (unit tests).
func New(snap domain.SnapshotStore) *Store {
	return &Store{snap: snap}
}

// Load pulls the snapshot into memory. An unreadable, corrupt, or missing
// snapshot falls back to the seed dataset instead of failing startup; the
// demo data is not worth dying over.
func (s *Store) Load(ctx context.Context) error {
	if s.snap == nil {
		s.replace(Seed())
		return nil
	}
	snap, err := s.snap.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Msg("snapshot unreadable, regenerating seed dataset")
		}
		s.replace(Seed())
		return s.Persist(ctx)
	}
	s.replace(snap)
	return nil
}

func (s *Store) replace(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]domain.User(nil), snap.Users...)
	s.hotels = make([]domain.Hotel, len(snap.Hotels))
	for i, h := range snap.Hotels {
		s.hotels[i] = h.Clone()
	}
}

// Persist writes the whole dataset. It completes before the caller answers
// the client, so a response never races its own write.
func (s *Store) Persist(ctx context.Context) error {
	if s.snap == nil {
		return nil
	}
	s.mu.RLock()
	snap := domain.Snapshot{
		Users:  append([]domain.User(nil), s.users...),
		Hotels: make([]domain.Hotel, len(s.hotels)),
	}
	for i, h := range s.hotels {
		snap.Hotels[i] = h.Clone()
	}
	s.mu.RUnlock()
	return s.snap.Save(ctx, snap)
}

func (s *Store) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Hotel, len(s.hotels))
	for i, h := range s.hotels {
		out[i] = h.Clone()
	}
	return out, nil
}

func (s *Store) FindHotel(ctx context.Context, id string) (domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hotels {
		if h.ID == id {
			return h.Clone(), nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

// UpsertHotel replaces the record with the same id or appends a new one.
// Last write wins; there is no record-level locking beyond the store mutex.
func (s *Store) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.hotels {
		if s.hotels[i].ID == h.ID {
			s.hotels[i] = h.Clone()
			return nil
		}
	}
	s.hotels = append(s.hotels, h.Clone())
	return nil
}

// NextHotelID continues the h<n> sequence over existing ids.
func (s *Store) NextHotelID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, h := range s.hotels {
		if n, ok := numericSuffix(h.ID, "h"); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("h%d", max+1), nil
}

func (s *Store) FindUser(ctx context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *Store) FindUserByName(ctx context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *Store) AddUser(ctx context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
	return nil
}

func (s *Store) NextUserID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	max := 0
	for _, u := range s.users {
		if n, ok := numericSuffix(u.ID, "u"); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("u%d", max+1), nil
}

func numericSuffix(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
