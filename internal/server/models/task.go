package models

import "time"

// Status is the binary completion state of a task.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// Toggled returns the opposite status.
func (s Status) Toggled() Status {
	if s == StatusComplete {
		return StatusIncomplete
	}
	return StatusComplete
}

// Valid reports whether s is one of the two known states.
func (s Status) Valid() bool {
	return s == StatusIncomplete || s == StatusComplete
}

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = "Normal"

// Task belongs to exactly one user. OwnerID is immutable after creation;
// visibility and mutation are gated on it by the service layer.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      Status
	CreatedAt   time.Time
}
