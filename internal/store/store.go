// Package store owns the ledger collections and persists them to a blob backend after
// every mutation.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/craftledger/internal/domain"
	"github.com/andresuchdata/craftledger/internal/storage"
)

const DefaultKey = "craftledger_data_v1"

// InitPolicy decides what a store starts with when no usable blob exists.
type InitPolicy int

const (
	SeedWithDefaults InitPolicy = iota
	StartEmpty
)

func (p InitPolicy) String() string {
	if p == StartEmpty {
		return "empty"
	}
	return "seed"
}

// ParseInitPolicy accepts "seed" or "empty".
func ParseInitPolicy(s string) (InitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "seed", "demo":
		return SeedWithDefaults, nil
	case "empty":
		return StartEmpty, nil
	default:
		return SeedWithDefaults, fmt.Errorf("%w: unknown init policy %q", domain.ErrInvalid, s)
	}
}

type Option func(*Store)

// WithClock overrides the time source used for lastUpdated and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how new record ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store is safe for concurrent use. Readers always receive copies.
type Store struct {
	mu      sync.RWMutex
	backend storage.BlobStore
	key     string
	records domain.Records

	now   func() time.Time
	newID func() string
}

// New reads the blob under key once. A missing or malformed blob is replaced by the
// state the policy names; a backend error is returned.
func New(ctx context.Context, backend storage.BlobStore, key string, policy InitPolicy, opts ...Option) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}

	s := &Store{
		backend: backend,
		key:     key,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, ok, err := backend.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load ledger %s: %w", key, err)
	}

	if !ok {
		log.Info().Str("key", key).Str("policy", policy.String()).Msg("no saved ledger, starting fresh")
		s.records = initialRecords(policy)
		return s, nil
	}

	var records domain.Records
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Str("key", key).Str("policy", policy.String()).Msg("saved ledger is malformed, ignoring it")
		s.records = initialRecords(policy)
		return s, nil
	}
	if records.Version > domain.SchemaVersion {
		log.Warn().Int("version", records.Version).Msg("saved ledger was written by a newer build")
	}

	s.records = normalize(records)
	log.Debug().
		Int("materials", len(s.records.Materials)).
		Int("products", len(s.records.Products)).
		Int("orders", len(s.records.Orders)).
		Int("ads", len(s.records.Ads)).
		Msg("ledger loaded")

	return s, nil
}

func initialRecords(policy InitPolicy) domain.Records {
	if policy == StartEmpty {
		return normalize(domain.Records{Version: domain.SchemaVersion})
	}
	return domain.DemoRecords()
}

// normalize replaces nil collections so they persist as [] rather than null.
func normalize(r domain.Records) domain.Records {
	if r.Materials == nil {
		r.Materials = []domain.Material{}
	}
	if r.Products == nil {
		r.Products = []domain.Product{}
	}
	for i := range r.Products {
		if r.Products[i].MaterialIDs == nil {
			r.Products[i].MaterialIDs = []string{}
		}
	}
	if r.Orders == nil {
		r.Orders = []domain.Order{}
	}
	if r.Ads == nil {
		r.Ads = []domain.AdSpend{}
	}
	return r
}

// Snapshot returns a deep copy of every collection.
func (s *Store) Snapshot() domain.Records {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records.Clone()
}

func (s *Store) Materials() []domain.Material {
	return s.Snapshot().Materials
}

func (s *Store) Products() []domain.Product {
	return s.Snapshot().Products
}

func (s *Store) Orders() []domain.Order {
	return s.Snapshot().Orders
}

func (s *Store) Ads() []domain.AdSpend {
	return s.Snapshot().Ads
}

// mutate applies fn to a copy, saves it and only then swaps it in.
func (s *Store) mutate(ctx context.Context, fn func(r *domain.Records) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.records.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next = normalize(next)
	next.Version = domain.SchemaVersion

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("failed to save ledger")
		return fmt.Errorf("save ledger %s: %w", s.key, err)
	}

	s.records = next
	return nil
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ResetToDemo replaces every collection with the demo data set.
func (s *Store) ResetToDemo(ctx context.Context) error {
	return s.mutate(ctx, func(r *domain.Records) error {
		*r = domain.DemoRecords()
		return nil
	})
}

// ClearAll removes every record, products included.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.mutate(ctx, func(r *domain.Records) error {
		*r = domain.Records{}
		return nil
	})
}

// StartFresh drops orders, ads and materials. Products stay but lose their material links.
func (s *Store) StartFresh(ctx context.Context) error {
	return s.mutate(ctx, func(r *domain.Records) error {
		r.Materials = nil
		r.Orders = nil
		r.Ads = nil
		for i := range r.Products {
			r.Products[i].MaterialIDs = []string{}
		}
		return nil
	})
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func remove[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	i := indexOf(items, id, idOf)
	if i < 0 {
		return items, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return append(items[:i], items[i+1:]...), nil
}
