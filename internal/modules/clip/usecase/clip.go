package usecase

import (
	"context"

	"cigbreak/internal/modules/clip/domain"
	"cigbreak/internal/modules/clip/dto"
	clipin "cigbreak/internal/modules/clip/port/in"
	"cigbreak/internal/modules/clip/service"
)

type Interactor struct {
	svc *service.ClipService
}

func NewInteractor(svc *service.ClipService) clipin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListClips(ctx context.Context) ([]dto.ClipOutput, error) {
	catalog, err := i.svc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClipOutput, len(catalog))
	for idx, c := range catalog {
		out[idx] = toOutput(c)
	}
	return out, nil
}

func (i *Interactor) PickNext(ctx context.Context, input dto.PickInput) (dto.ClipOutput, error) {
	c, err := i.svc.PickNext(ctx, domain.NewSeenSet(input.Seen...))
	if err != nil {
		return dto.ClipOutput{}, err
	}
	return toOutput(c), nil
}

func (i *Interactor) Resolve(_ context.Context, sourceURL string) dto.ResolveOutput {
	id, ok := domain.ExtractID(sourceURL)
	return dto.ResolveOutput{
		SourceURL: sourceURL,
		VideoID:   id,
		EmbedURL:  domain.EmbedURL(id),
		Playable:  ok,
	}
}

func toOutput(c domain.Clip) dto.ClipOutput {
	return dto.ClipOutput{Title: c.Title, SourceURL: c.SourceURL}
}
