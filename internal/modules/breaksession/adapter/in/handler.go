package in

import (
	"context"

	"cigbreak/internal/modules/breaksession/dto"
	breakin "cigbreak/internal/modules/breaksession/port/in"
)

type TUIHandler struct {
	usecase breakin.Usecase
}

func NewTUIHandler(usecase breakin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context) (dto.BreakOutput, error) {
	return h.usecase.Start(ctx)
}

func (h TUIHandler) ConfirmBetter(ctx context.Context) (dto.BreakOutput, error) {
	return h.usecase.ConfirmBetter(ctx)
}

func (h TUIHandler) RequestAnother(ctx context.Context) (dto.BreakOutput, error) {
	return h.usecase.RequestAnother(ctx)
}

func (h TUIHandler) Stop(ctx context.Context) (dto.BreakOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h TUIHandler) Current(ctx context.Context) dto.BreakOutput {
	return h.usecase.Current(ctx)
}

func (h TUIHandler) Replay(ctx context.Context) (dto.BreakOutput, error) {
	return h.usecase.Replay(ctx)
}

func (h TUIHandler) Events(ctx context.Context) <-chan dto.BreakEvent {
	return h.usecase.Events(ctx)
}
