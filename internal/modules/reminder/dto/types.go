package dto

type ReminderOutput struct {
	Enabled    bool
	Minutes    int
	Permission string
	Delivering bool
	Sent       int
}

// Alert is a reminder delivered to an in-process surface.
type Alert struct {
	Title string
	Body  string
}
