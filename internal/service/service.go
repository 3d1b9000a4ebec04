// Package service exposes the nest read/write contract consumed by the
// selection aggregator, the pin editor and the TUI. It is an in-process
// layer over storage.Storage; callers only ever see the fetch/save methods
// and the two error kinds.
package service

import (
	"context"

	"github.com/coltonswapp/nestnote/internal/logger"
	"github.com/coltonswapp/nestnote/internal/model"
	"github.com/coltonswapp/nestnote/internal/storage"
)

// MaxPinnedCategories is the hard cap on categories pinned for sitters.
const MaxPinnedCategories = 4

// NestService implements the nest fetch/save contract over a storage backend.
type NestService struct {
	store storage.Storage
	log   *logger.Logger
}

// NewNestService creates a NestService. A nil log defaults to a no-op logger.
func NewNestService(store storage.Storage, log *logger.Logger) *NestService {
	if log == nil {
		log = logger.Nop()
	}
	return &NestService{store: store, log: log}
}

// load reads the nest, honoring context cancellation at the call boundary.
func (s *NestService) load(ctx context.Context, op string) (*model.Nest, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	nest, err := s.store.Load()
	if err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("nest load failed")
		return nil, &FetchError{Op: op, Err: err}
	}
	return nest, nil
}

// FetchAllItems returns the id/category summary of every entry, place and
// routine in the nest.
func (s *NestService) FetchAllItems(ctx context.Context) ([]model.ItemSummary, error) {
	nest, err := s.load(ctx, "fetch all items")
	if err != nil {
		return nil, err
	}
	return nest.AllItems(), nil
}

// FetchCategories returns all categories, nested ones included.
func (s *NestService) FetchCategories(ctx context.Context) ([]model.Category, error) {
	nest, err := s.load(ctx, "fetch categories")
	if err != nil {
		return nil, err
	}
	return nest.Categories, nil
}

// FetchEntries returns all entries grouped by category name.
func (s *NestService) FetchEntries(ctx context.Context) (map[string][]model.Entry, error) {
	nest, err := s.load(ctx, "fetch entries")
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]model.Entry)
	for _, e := range nest.Entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped, nil
}

// FetchPlaces returns all places.
func (s *NestService) FetchPlaces(ctx context.Context) ([]model.Place, error) {
	nest, err := s.load(ctx, "fetch places")
	if err != nil {
		return nil, err
	}
	return nest.Places, nil
}

// FetchPinnedCategories returns the pinned category names in pin order.
// A nest without pins yields an empty slice, not an error.
func (s *NestService) FetchPinnedCategories(ctx context.Context) ([]string, error) {
	nest, err := s.load(ctx, "fetch pinned categories")
	if err != nil {
		return nil, err
	}
	if nest.PinnedCategories == nil {
		return []string{}, nil
	}
	return nest.PinnedCategories, nil
}

// SavePinnedCategories replaces the persisted pin set. The cap is enforced
// here as well as in the editor so no caller can oversave.
func (s *NestService) SavePinnedCategories(ctx context.Context, names []string) error {
	if err := ctx.Err(); err != nil {
		return &SaveError{Op: "save pinned categories", Err: err}
	}
	if len(names) > MaxPinnedCategories {
		names = names[:MaxPinnedCategories]
	}

	nest, err := s.store.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("nest load failed before pin save")
		return &SaveError{Op: "save pinned categories", Err: err}
	}

	nest.PinnedCategories = append([]string{}, names...)
	if err := s.store.Save(nest); err != nil {
		s.log.Error().Err(err).Strs("pins", names).Msg("pin save failed")
		return &SaveError{Op: "save pinned categories", Err: err}
	}

	s.log.Info().Strs("pins", names).Msg("pinned categories saved")
	return nil
}
