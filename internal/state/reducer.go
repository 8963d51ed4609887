package state

import (
	"math"

	"github.com/tpham/study-tracker/internal/model"
)

// XP awarded for completing a full-goal task. Partial-goal tasks award
// a share of this proportional to their partial percent.
const baseFullXP = 100

// xpPerLevel is the XP span of one level: level = floor(xp / 500).
const xpPerLevel = 500

// defaultPartialPercent substitutes for an unset partial percent, both
// in progress derivation and in XP awards.
const defaultPartialPercent = 50

// Reduce maps the current state and an action to the next state. It is
// pure and total: the input state is never mutated, actions whose
// preconditions fail (missing session/task/assignment ids) return the
// input state unchanged, and so does any action kind the switch does
// not recognize.
func Reduce(s model.AppState, action Action) model.AppState {
	switch a := action.(type) {
	case AddSession:
		next := s
		next.Sessions = append(cloneSessions(s.Sessions), a.Session)
		timers := cloneTimers(s.ActiveTimers)
		timers[a.Session.ID] = 0
		next.ActiveTimers = timers
		return next

	case UpdateSession:
		i, ok := findSession(s.Sessions, a.Session.ID)
		if !ok {
			return s
		}
		next := s
		sessions := cloneSessions(s.Sessions)
		sessions[i] = a.Session
		next.Sessions = sessions
		return next

	case DeleteSession:
		next := s
		sessions := make([]model.Session, 0, len(s.Sessions))
		for _, sess := range s.Sessions {
			if sess.ID != a.SessionID {
				sessions = append(sessions, sess)
			}
		}
		next.Sessions = sessions
		timers := cloneTimers(s.ActiveTimers)
		delete(timers, a.SessionID)
		next.ActiveTimers = timers
		return next

	case SetTimer:
		if _, ok := findSession(s.Sessions, a.SessionID); !ok {
			return s
		}
		next := s
		timers := cloneTimers(s.ActiveTimers)
		timers[a.SessionID] = a.Seconds
		next.ActiveTimers = timers
		return next

	case IncrementTimer:
		if _, ok := findSession(s.Sessions, a.SessionID); !ok {
			return s
		}
		next := s
		timers := cloneTimers(s.ActiveTimers)
		timers[a.SessionID] = timers[a.SessionID] + 1
		next.ActiveTimers = timers
		return next

	case ResetTimer:
		if _, ok := findSession(s.Sessions, a.SessionID); !ok {
			return s
		}
		next := s
		timers := cloneTimers(s.ActiveTimers)
		timers[a.SessionID] = 0
		next.ActiveTimers = timers
		return next

	case UpdateDuration:
		i, ok := findSession(s.Sessions, a.SessionID)
		if !ok {
			return s
		}
		next := s
		sessions := cloneSessions(s.Sessions)
		sessions[i].Duration = a.Minutes
		next.Sessions = sessions
		return next

	case UpdateReminderInterval:
		i, ok := findSession(s.Sessions, a.SessionID)
		if !ok {
			return s
		}
		next := s
		sessions := cloneSessions(s.Sessions)
		sessions[i].ReminderInterval = a.IntervalSec
		next.Sessions = sessions
		return next

	case ToggleTaskComplete:
		si, ok := findSession(s.Sessions, a.SessionID)
		if !ok {
			return s
		}
		ti, ok := findTask(s.Sessions[si].Tasks, a.TaskID)
		if !ok {
			return s
		}
		sessions := cloneSessions(s.Sessions)
		tasks := cloneTasks(sessions[si].Tasks)
		tasks[ti].Completed = !tasks[ti].Completed
		sessions[si].Tasks = tasks

		next := s
		next.Sessions = sessions
		if id := tasks[ti].AssignmentID; id != "" {
			next.Assignments = withProgress(s.Assignments, id, assignmentProgress(sessions, id))
		}
		if tasks[ti].Completed {
			// XP is a one-way ratchet: awarded on completion, never
			// deducted when the task is toggled back.
			next.XP = s.XP + taskXP(tasks[ti])
			next.Level = next.XP / xpPerLevel
		}
		return next

	case AddTask:
		si, ok := findSession(s.Sessions, a.SessionID)
		if !ok {
			return s
		}
		sessions := cloneSessions(s.Sessions)
		sessions[si].Tasks = append(cloneTasks(sessions[si].Tasks), a.Task)

		next := s
		next.Sessions = sessions
		if id := a.Task.AssignmentID; id != "" {
			next.Assignments = withProgress(s.Assignments, id, assignmentProgress(sessions, id))
		}
		return next

	case DeleteTask:
		si, ok := findSession(s.Sessions, a.SessionID)
		if !ok {
			return s
		}
		ti, ok := findTask(s.Sessions[si].Tasks, a.TaskID)
		if !ok {
			return s
		}
		removed := s.Sessions[si].Tasks[ti]
		sessions := cloneSessions(s.Sessions)
		tasks := make([]model.Task, 0, len(sessions[si].Tasks)-1)
		for _, t := range sessions[si].Tasks {
			if t.ID != a.TaskID {
				tasks = append(tasks, t)
			}
		}
		sessions[si].Tasks = tasks

		next := s
		next.Sessions = sessions
		if id := removed.AssignmentID; id != "" {
			next.Assignments = withProgress(s.Assignments, id, assignmentProgress(sessions, id))
		}
		return next

	case AddAssignment:
		next := s
		added := a.Assignment
		added.Progress = 0
		next.Assignments = append(cloneAssignments(s.Assignments), added)
		return next

	case UpdateAssignment:
		i, ok := findAssignment(s.Assignments, a.Assignment.ID)
		if !ok {
			return s
		}
		next := s
		assignments := cloneAssignments(s.Assignments)
		assignments[i] = a.Assignment
		next.Assignments = assignments
		return next

	case DeleteAssignment:
		next := s
		assignments := make([]model.Assignment, 0, len(s.Assignments))
		for _, asn := range s.Assignments {
			if asn.ID != a.AssignmentID {
				assignments = append(assignments, asn)
			}
		}
		next.Assignments = assignments
		return next

	case UpdateAssignmentProgress:
		i, ok := findAssignment(s.Assignments, a.AssignmentID)
		if !ok {
			return s
		}
		next := s
		assignments := cloneAssignments(s.Assignments)
		assignments[i].Progress = a.Progress
		next.Assignments = assignments
		return next

	case UpdateSettings:
		next := s
		settings := s.Settings
		if a.Patch.NotificationsEnabled != nil {
			settings.NotificationsEnabled = *a.Patch.NotificationsEnabled
		}
		if a.Patch.Theme != nil {
			settings.Theme = *a.Patch.Theme
		}
		if a.Patch.PedometerEnabled != nil {
			settings.PedometerEnabled = *a.Patch.PedometerEnabled
		}
		next.Settings = settings
		return next

	case LoadState:
		next := a.State
		if next.ActiveTimers == nil {
			next.ActiveTimers = model.ActiveTimers{}
		}
		return next

	default:
		return s
	}
}

// assignmentProgress recomputes an assignment's progress from every
// task across every session that references it. A single completed
// full-goal task dominates and yields 100; otherwise progress is the
// sum of partial percents (default 50 when unset) over completed
// partial-goal tasks, clamped to [0, 100]. Recomputing from scratch
// keeps the value idempotent under repeated toggles at the cost of a
// scan over all tasks.
func assignmentProgress(sessions []model.Session, assignmentID string) int {
	sum := 0
	for _, sess := range sessions {
		for _, t := range sess.Tasks {
			if t.AssignmentID != assignmentID {
				continue
			}
			if t.Goal == model.GoalFull && t.Completed {
				return 100
			}
			if t.Goal == model.GoalPartial && t.Completed {
				sum += partialPercent(t)
			}
		}
	}
	if sum > 100 {
		return 100
	}
	if sum < 0 {
		return 0
	}
	return sum
}

// taskXP returns the XP award for a task transitioning into the
// completed state.
func taskXP(t model.Task) int {
	if t.Goal == model.GoalFull {
		return baseFullXP
	}
	pct := partialPercent(t)
	return int(math.Round(baseFullXP * float64(pct) / 100))
}

// partialPercent returns the task's partial percent, substituting the
// default when unset.
func partialPercent(t model.Task) int {
	if t.PartialPercent == 0 {
		return defaultPartialPercent
	}
	return t.PartialPercent
}

func findSession(sessions []model.Session, id string) (int, bool) {
	for i, s := range sessions {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

func findTask(tasks []model.Task, id string) (int, bool) {
	for i, t := range tasks {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}

func findAssignment(assignments []model.Assignment, id string) (int, bool) {
	for i, a := range assignments {
		if a.ID == id {
			return i, true
		}
	}
	return 0, false
}

// cloneSessions copies the session slice. Task slices are shared with
// the input until a specific session's tasks are replaced.
func cloneSessions(sessions []model.Session) []model.Session {
	next := make([]model.Session, len(sessions))
	copy(next, sessions)
	return next
}

func cloneTasks(tasks []model.Task) []model.Task {
	next := make([]model.Task, len(tasks))
	copy(next, tasks)
	return next
}

func cloneAssignments(assignments []model.Assignment) []model.Assignment {
	next := make([]model.Assignment, len(assignments))
	copy(next, assignments)
	return next
}

func cloneTimers(timers model.ActiveTimers) model.ActiveTimers {
	next := make(model.ActiveTimers, len(timers)+1)
	for id, secs := range timers {
		next[id] = secs
	}
	return next
}

// withProgress returns a copy of assignments with the matching entry's
// progress replaced. Missing ids leave the input untouched, so dangling
// task references are harmless.
func withProgress(assignments []model.Assignment, id string, progress int) []model.Assignment {
	i, ok := findAssignment(assignments, id)
	if !ok {
		return assignments
	}
	next := cloneAssignments(assignments)
	next[i].Progress = progress
	return next
}
