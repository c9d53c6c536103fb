package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cigbreak/internal/modules/clip/domain"
	clipout "cigbreak/internal/modules/clip/port/out"
	apperrors "cigbreak/internal/platform/errors"
	"cigbreak/internal/platform/logger"
)

// ClipService owns the catalog, loaded once from its store.
type ClipService struct {
	store    clipout.CatalogStore
	selector *Selector
	log      *slog.Logger

	once    sync.Once
	catalog []domain.Clip
	loadErr error
}

func NewClipService(store clipout.CatalogStore, selector *Selector, log *slog.Logger) *ClipService {
	return &ClipService{store: store, selector: selector, log: logger.OrDiscard(log)}
}

func (s *ClipService) Catalog(ctx context.Context) ([]domain.Clip, error) {
	s.once.Do(func() {
		catalog, err := s.store.Load(ctx)
		if err != nil {
			s.loadErr = fmt.Errorf("load catalog: %w", err)
			return
		}
		for _, c := range catalog {
			if err := c.Validate(); err != nil {
				s.loadErr = fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
				return
			}
		}
		if len(catalog) == 0 {
			s.loadErr = apperrors.ErrEmptyCatalog
			return
		}
		if dups := domain.Duplicates(catalog); len(dups) > 0 {
			s.log.Warn("catalog has duplicate clips", "source_urls", dups)
		}
		s.catalog = catalog
	})
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.catalog, nil
}

func (s *ClipService) PickNext(ctx context.Context, seen domain.SeenSet) (domain.Clip, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return domain.Clip{}, err
	}
	return s.selector.PickNext(catalog, seen)
}
