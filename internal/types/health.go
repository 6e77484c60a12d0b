package types

import "time"

// HealthState represents the health state of an external dependency.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// String returns the string representation of HealthState.
func (s HealthState) String() string {
	return string(s)
}

// HealthStatus reports the reachability of an external dependency with a
// human-readable message and the time of the check.
type HealthStatus struct {
	State     HealthState
	Message   string
	CheckedAt time.Time
}

// IsHealthy reports whether the status is healthy.
func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}

// Healthy builds a healthy status with the given message.
func Healthy(message string) HealthStatus {
	return HealthStatus{
		State:     HealthStateHealthy,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

// Unhealthy builds an unhealthy status with the given message.
func Unhealthy(message string) HealthStatus {
	return HealthStatus{
		State:     HealthStateUnhealthy,
		Message:   message,
		CheckedAt: time.Now(),
	}
}
