package in

import (
	"context"

	"cigbreak/internal/modules/breaksession/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.BreakOutput, error)
	ConfirmBetter(ctx context.Context) (dto.BreakOutput, error)
	RequestAnother(ctx context.Context) (dto.BreakOutput, error)
	Stop(ctx context.Context) (dto.BreakOutput, error)
	Current(ctx context.Context) dto.BreakOutput
	// Replay opens the current clip again.
	Replay(ctx context.Context) (dto.BreakOutput, error)
	// Events streams transitions until ctx is done, then closes.
	Events(ctx context.Context) <-chan dto.BreakEvent
}
