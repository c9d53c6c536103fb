package in

import (
	"context"

	"cigbreak/internal/modules/reminder/dto"
)

type Usecase interface {
	// Enable persists the cadence and starts reminding. minutes == 0 keeps the
	// stored cadence; other values are clamped.
	Enable(ctx context.Context, minutes int) dto.ReminderOutput
	Disable(ctx context.Context) dto.ReminderOutput
	SetInterval(ctx context.Context, minutes int) dto.ReminderOutput
	Status(ctx context.Context) dto.ReminderOutput
}
