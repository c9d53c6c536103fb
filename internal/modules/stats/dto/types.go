package dto

type StatsOutput struct {
	BreaksTaken     int
	YesCount        int
	NotYetCount     int
	ReminderMinutes int
}
