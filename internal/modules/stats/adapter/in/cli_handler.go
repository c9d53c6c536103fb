package in

import (
	"context"

	statsdto "cigbreak/internal/modules/stats/dto"
	statsin "cigbreak/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) statsdto.StatsOutput {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) statsdto.StatsOutput {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) SetReminderMinutes(ctx context.Context, minutes int) statsdto.StatsOutput {
	return h.usecase.SetReminderMinutes(ctx, minutes)
}
