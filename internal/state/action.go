package state

import "github.com/tpham/study-tracker/internal/model"

// Action is the sealed set of state transitions understood by Reduce.
// Each concrete action carries its payload. Payload shapes are
// validated by callers before dispatch; the reducer itself never
// rejects an action, it only ignores ones whose preconditions fail.
type Action interface {
	isAction()
}

// AddSession appends a new session and creates its timer entry at zero.
// The session id must be caller-supplied and unique.
type AddSession struct {
	Session model.Session
}

// UpdateSession replaces the session with a matching id wholesale.
type UpdateSession struct {
	Session model.Session
}

// DeleteSession removes a session, its tasks, and its timer entry.
type DeleteSession struct {
	SessionID string
}

// SetTimer sets a session's elapsed seconds to an absolute value.
type SetTimer struct {
	SessionID string
	Seconds   int
}

// IncrementTimer advances a session's elapsed seconds by one.
type IncrementTimer struct {
	SessionID string
}

// ResetTimer zeroes a session's elapsed seconds. The session's derived
// duration field is left untouched.
type ResetTimer struct {
	SessionID string
}

// UpdateDuration sets a session's duration in minutes. The timer loop
// fires this once per minute boundary with floor(seconds/60).
type UpdateDuration struct {
	SessionID string
	Minutes   int
}

// UpdateReminderInterval records a session's reminder cadence in
// seconds (zero clears it). It only records intent; scheduling and
// cancellation are side effects the presentation layer performs.
type UpdateReminderInterval struct {
	SessionID   string
	IntervalSec int
}

// ToggleTaskComplete flips a task's completed flag, recomputes the
// linked assignment's progress, and awards XP when the task transitions
// into the completed state.
type ToggleTaskComplete struct {
	SessionID string
	TaskID    string
}

// AddTask appends a task to a session and recomputes the linked
// assignment's progress if the task references one.
type AddTask struct {
	SessionID string
	Task      model.Task
}

// DeleteTask removes a task from a session and recomputes the linked
// assignment's progress if the task referenced one.
type DeleteTask struct {
	SessionID string
	TaskID    string
}

// AddAssignment appends a new assignment with progress initialized to
// zero.
type AddAssignment struct {
	Assignment model.Assignment
}

// UpdateAssignment replaces the assignment with a matching id wholesale.
type UpdateAssignment struct {
	Assignment model.Assignment
}

// DeleteAssignment removes an assignment. Tasks referencing it are not
// touched; they keep a dangling assignment id that lookups must handle.
type DeleteAssignment struct {
	AssignmentID string
}

// UpdateAssignmentProgress force-sets an assignment's progress,
// bypassing the derivation from task completion. Kept for callers that
// compute progress under a different policy; the derived value is
// canonical.
type UpdateAssignmentProgress struct {
	AssignmentID string
	Progress     int
}

// UpdateSettings shallow-merges a settings patch.
type UpdateSettings struct {
	Patch model.SettingsPatch
}

// LoadState replaces the entire state with a persisted snapshot. Fired
// exactly once at startup when the async load completes.
type LoadState struct {
	State model.AppState
}

func (AddSession) isAction()               {}
func (UpdateSession) isAction()            {}
func (DeleteSession) isAction()            {}
func (SetTimer) isAction()                 {}
func (IncrementTimer) isAction()           {}
func (ResetTimer) isAction()               {}
func (UpdateDuration) isAction()           {}
func (UpdateReminderInterval) isAction()   {}
func (ToggleTaskComplete) isAction()       {}
func (AddTask) isAction()                  {}
func (DeleteTask) isAction()               {}
func (AddAssignment) isAction()            {}
func (UpdateAssignment) isAction()         {}
func (DeleteAssignment) isAction()         {}
func (UpdateAssignmentProgress) isAction() {}
func (UpdateSettings) isAction()           {}
func (LoadState) isAction()                {}
