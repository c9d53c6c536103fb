package domain

const (
	MinMinutes = 15
	MaxMinutes = 240

	NotificationTitle = "Cig Break"
	NotificationBody  = "Time to step away for 90 seconds… cig like Cignetti."
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

type Notification struct {
	Title string
	Body  string
}

func BreakNotification() Notification {
	return Notification{Title: NotificationTitle, Body: NotificationBody}
}

// ClampMinutes bounds a reminder cadence to [MinMinutes, MaxMinutes].
func ClampMinutes(n int) int {
	return min(max(n, MinMinutes), MaxMinutes)
}

// State describes the reminder loop. Delivering is false when reminders are on
// but the notifier cannot show anything, which is a silent degraded mode.
type State struct {
	Enabled    bool
	Minutes    int
	Permission Permission
	Delivering bool
	Sent       int
}
