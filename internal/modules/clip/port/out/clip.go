package out

import (
	"context"

	"cigbreak/internal/modules/clip/domain"
)

type CatalogStore interface {
	Load(ctx context.Context) ([]domain.Clip, error)
}
