package in

import (
	"context"

	"cigbreak/internal/modules/stats/dto"
)

type Usecase interface {
	Get(ctx context.Context) dto.StatsOutput
	RecordBreak(ctx context.Context) dto.StatsOutput
	RecordYes(ctx context.Context) dto.StatsOutput
	RecordNotYet(ctx context.Context) dto.StatsOutput
	SetReminderMinutes(ctx context.Context, minutes int) dto.StatsOutput
	Reset(ctx context.Context) dto.StatsOutput
}
