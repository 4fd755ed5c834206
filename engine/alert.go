package engine

import "time"

type (
	// Alert is a diagnostic sent from the engine or the allocator to whoever
	// listens on Broker.ToModel. Alerts with the same Name replace each other
	// in a display.
	Alert struct {
		Name     string
		Priority AlertPriority
		Message  string
		Duration time.Duration
	}

	AlertPriority int
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

func (p AlertPriority) String() string {
	switch p {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}
