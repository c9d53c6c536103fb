package in

import (
	"context"

	clipdto "cigbreak/internal/modules/clip/dto"
	clipin "cigbreak/internal/modules/clip/port/in"
)

type CLIHandler struct {
	usecase clipin.Usecase
}

func NewCLIHandler(usecase clipin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]clipdto.ClipOutput, error) {
	return h.usecase.ListClips(ctx)
}

func (h CLIHandler) Resolve(ctx context.Context, sourceURL string) clipdto.ResolveOutput {
	return h.usecase.Resolve(ctx, sourceURL)
}
