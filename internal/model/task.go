package model

// Task goal constants.
const (
	GoalFull    = "full"
	GoalPartial = "partial"
)

// Task is a unit of work inside a study session, optionally tied to a
// longer-running assignment. Tasks never exist outside a session.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id" validate:"required"`

	// Name is the short human-readable label.
	Name string `json:"name" validate:"required,min=1"`

	// Goal is either "full" or "partial" (use the Goal* constants).
	Goal string `json:"goal" validate:"required,oneof=full partial"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`

	// Description is optional free-form detail.
	Description string `json:"description,omitempty"`

	// AssignmentID links this task to an assignment by id. Empty means
	// unlinked. The relation is lookup-only, never ownership.
	AssignmentID string `json:"assignment_id,omitempty"`

	// PartialPercent is this task's contribution toward its linked
	// assignment's progress, 1-100. Zero means unset, which the reducer
	// treats as 50. Only meaningful when Goal is partial and
	// AssignmentID is set; ignored otherwise.
	PartialPercent int `json:"partial_percent,omitempty" validate:"omitempty,min=1,max=100"`
}
