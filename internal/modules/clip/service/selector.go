package service

import (
	"math/rand"
	"sync"
	"time"

	"cigbreak/internal/modules/clip/domain"
	apperrors "cigbreak/internal/platform/errors"
)

// Selector picks clips uniformly at random, preferring ones not yet seen.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(r *rand.Rand) *Selector {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: r}
}

// PickNext draws from the unseen clips, or from the whole catalog once every
// clip has been shown. Recording the pick in seen is the caller's job.
func (s *Selector) PickNext(catalog []domain.Clip, seen domain.SeenSet) (domain.Clip, error) {
	if len(catalog) == 0 {
		return domain.Clip{}, apperrors.ErrEmptyCatalog
	}
	pool := make([]domain.Clip, 0, len(catalog))
	for _, c := range catalog {
		if !seen.Has(c.SourceURL) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = catalog
	}

	s.mu.Lock()
	idx := s.rng.Intn(len(pool))
	s.mu.Unlock()
	return pool[idx], nil
}
