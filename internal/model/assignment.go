package model

// Assignment is a longer-lived deliverable tracked independently of any
// single session. Tasks reference assignments by id.
type Assignment struct {
	// ID is the unique identifier for this assignment.
	ID string `json:"id" validate:"required"`

	// Name is the human-readable label.
	Name string `json:"name" validate:"required,min=1"`

	// DueDate is the due day, formatted 2006-01-02.
	DueDate string `json:"due_date" validate:"required,datetime=2006-01-02"`

	// Progress is the cached completion percentage (0-100), recomputed
	// from linked task completion whenever it changes.
	Progress int `json:"progress" validate:"min=0,max=100"`
}
