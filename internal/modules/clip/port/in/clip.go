package in

import (
	"context"

	"cigbreak/internal/modules/clip/dto"
)

type Usecase interface {
	ListClips(ctx context.Context) ([]dto.ClipOutput, error)
	PickNext(ctx context.Context, input dto.PickInput) (dto.ClipOutput, error)
	Resolve(ctx context.Context, sourceURL string) dto.ResolveOutput
}
