package state

import (
	"testing"

	"github.com/tpham/study-tracker/internal/model"
)

func baseState() model.AppState {
	return model.AppState{
		Sessions: []model.Session{
			{
				ID:   "s1",
				Date: "2026-03-01",
				Tasks: []model.Task{
					{ID: "t1", Name: "read chapter", Goal: model.GoalFull, AssignmentID: "a1"},
					{ID: "t2", Name: "take notes", Goal: model.GoalPartial, PartialPercent: 30, AssignmentID: "a1"},
				},
			},
		},
		Assignments: []model.Assignment{
			{ID: "a1", Name: "essay", DueDate: "2026-03-10"},
		},
		ActiveTimers: model.ActiveTimers{"s1": 0},
		Settings:     model.DefaultSettings(),
	}
}

func TestAddSessionCreatesTimerEntry(t *testing.T) {
	t.Parallel()
	s := baseState()
	next := Reduce(s, AddSession{Session: model.Session{ID: "s2", Date: "2026-03-02"}})

	if len(next.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(next.Sessions))
	}
	if secs, ok := next.ActiveTimers["s2"]; !ok || secs != 0 {
		t.Fatalf("expected timer entry at zero for new session, got %d (present: %v)", secs, ok)
	}
	if len(s.Sessions) != 1 {
		t.Fatalf("input state was mutated")
	}
}

func TestUpdateSessionReplacesWholesale(t *testing.T) {
	t.Parallel()
	s := baseState()
	next := Reduce(s, UpdateSession{Session: model.Session{ID: "s1", Date: "2026-03-05"}})

	if next.Sessions[0].Date != "2026-03-05" {
		t.Fatalf("expected replaced date, got %q", next.Sessions[0].Date)
	}
	if len(next.Sessions[0].Tasks) != 0 {
		t.Fatalf("wholesale replace should drop tasks not in the payload")
	}
}

func TestUpdateSessionMissingIDIsNoop(t *testing.T) {
	t.Parallel()
	s := baseState()
	next := Reduce(s, UpdateSession{Session: model.Session{ID: "nope"}})

	if len(next.Sessions) != 1 || next.Sessions[0].Date != "2026-03-01" {
		t.Fatalf("expected state unchanged for unknown session id")
	}
}

func TestDeleteSessionRemovesTimer(t *testing.T) {
	t.Parallel()
	s := baseState()
	s.ActiveTimers["s1"] = 42
	next := Reduce(s, DeleteSession{SessionID: "s1"})

	if len(next.Sessions) != 0 {
		t.Fatalf("expected session removed")
	}
	if _, ok := next.ActiveTimers["s1"]; ok {
		t.Fatalf("expected timer entry removed with session")
	}
}

func TestTimerLifecycle(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, SetTimer{SessionID: "s1", Seconds: 100})
	if next.ActiveTimers["s1"] != 100 {
		t.Fatalf("set: expected 100, got %d", next.ActiveTimers["s1"])
	}

	next = Reduce(next, IncrementTimer{SessionID: "s1"})
	if next.ActiveTimers["s1"] != 101 {
		t.Fatalf("increment: expected 101, got %d", next.ActiveTimers["s1"])
	}

	next = Reduce(next, ResetTimer{SessionID: "s1"})
	if next.ActiveTimers["s1"] != 0 {
		t.Fatalf("reset: expected 0, got %d", next.ActiveTimers["s1"])
	}

	// Reset is idempotent.
	again := Reduce(next, ResetTimer{SessionID: "s1"})
	if again.ActiveTimers["s1"] != 0 {
		t.Fatalf("repeated reset: expected 0, got %d", again.ActiveTimers["s1"])
	}
}

func TestTimerActionsIgnoreUnknownSession(t *testing.T) {
	t.Parallel()
	s := baseState()

	for _, action := range []Action{
		SetTimer{SessionID: "ghost", Seconds: 5},
		IncrementTimer{SessionID: "ghost"},
		ResetTimer{SessionID: "ghost"},
		UpdateDuration{SessionID: "ghost", Minutes: 1},
	} {
		next := Reduce(s, action)
		if _, ok := next.ActiveTimers["ghost"]; ok {
			t.Fatalf("%T: expected no timer entry for unknown session", action)
		}
		if next.Sessions[0].Duration != 0 {
			t.Fatalf("%T: expected duration untouched", action)
		}
	}
}

func TestMinuteBoundaryScenario(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := s
	for i := 0; i < 65; i++ {
		next = Reduce(next, IncrementTimer{SessionID: "s1"})
		if secs := next.ActiveTimers["s1"]; secs > 0 && secs%60 == 0 {
			next = Reduce(next, UpdateDuration{SessionID: "s1", Minutes: secs / 60})
		}
	}

	if next.ActiveTimers["s1"] != 65 {
		t.Fatalf("expected 65 elapsed seconds, got %d", next.ActiveTimers["s1"])
	}
	if next.Sessions[0].Duration != 1 {
		t.Fatalf("expected 1 logged minute after 65 ticks, got %d", next.Sessions[0].Duration)
	}
}

func TestUpdateReminderInterval(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, UpdateReminderInterval{SessionID: "s1", IntervalSec: 1500})
	if next.Sessions[0].ReminderInterval != 1500 {
		t.Fatalf("expected 1500, got %d", next.Sessions[0].ReminderInterval)
	}

	next = Reduce(next, UpdateReminderInterval{SessionID: "s1", IntervalSec: 0})
	if next.Sessions[0].ReminderInterval != 0 {
		t.Fatalf("expected cleared interval, got %d", next.Sessions[0].ReminderInterval)
	}
}

func TestToggleFullTaskAwardsXPAndCompletesAssignment(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, ToggleTaskComplete{SessionID: "s1", TaskID: "t1"})

	if !next.Sessions[0].Tasks[0].Completed {
		t.Fatalf("expected task completed")
	}
	if next.XP != 100 {
		t.Fatalf("expected 100 XP for a full-goal task, got %d", next.XP)
	}
	if next.Assignments[0].Progress != 100 {
		t.Fatalf("completed full-goal task should dominate progress, got %d", next.Assignments[0].Progress)
	}
}

func TestXPIsOneWayRatchet(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, ToggleTaskComplete{SessionID: "s1", TaskID: "t1"})
	next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: "t1"})

	if next.Sessions[0].Tasks[0].Completed {
		t.Fatalf("expected task back to incomplete")
	}
	if next.XP != 100 {
		t.Fatalf("XP must not be deducted on un-complete, got %d", next.XP)
	}
	if next.Assignments[0].Progress != 0 {
		t.Fatalf("progress must be re-derived to 0 after un-complete, got %d", next.Assignments[0].Progress)
	}

	// Completing again awards again; the ratchet only moves up.
	next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: "t1"})
	if next.XP != 200 {
		t.Fatalf("expected 200 XP after second completion, got %d", next.XP)
	}
}

func TestPartialTaskProgressAndXP(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, ToggleTaskComplete{SessionID: "s1", TaskID: "t2"})

	if next.Assignments[0].Progress != 30 {
		t.Fatalf("expected progress 30 from a 30%% partial task, got %d", next.Assignments[0].Progress)
	}
	if next.XP != 30 {
		t.Fatalf("expected 30 XP from a 30%% partial task, got %d", next.XP)
	}
}

func TestPartialProgressSumsAndClamps(t *testing.T) {
	t.Parallel()
	s := baseState()
	s.Sessions[0].Tasks = []model.Task{
		{ID: "p1", Goal: model.GoalPartial, PartialPercent: 30, AssignmentID: "a1"},
		{ID: "p2", Goal: model.GoalPartial, PartialPercent: 40, AssignmentID: "a1"},
		{ID: "p3", Goal: model.GoalPartial, PartialPercent: 40, AssignmentID: "a1"},
	}

	next := Reduce(s, ToggleTaskComplete{SessionID: "s1", TaskID: "p1"})
	next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: "p2"})
	if next.Assignments[0].Progress != 70 {
		t.Fatalf("expected 30+40=70, got %d", next.Assignments[0].Progress)
	}

	next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: "p3"})
	if next.Assignments[0].Progress != 100 {
		t.Fatalf("expected sum clamped to 100, got %d", next.Assignments[0].Progress)
	}
}

func TestUnsetPartialPercentDefaultsToFifty(t *testing.T) {
	t.Parallel()
	s := baseState()
	s.Sessions[0].Tasks = []model.Task{
		{ID: "p1", Goal: model.GoalPartial, AssignmentID: "a1"},
	}

	next := Reduce(s, ToggleTaskComplete{SessionID: "s1", TaskID: "p1"})
	if next.Assignments[0].Progress != 50 {
		t.Fatalf("expected default 50%% contribution, got %d", next.Assignments[0].Progress)
	}
	if next.XP != 50 {
		t.Fatalf("expected 50 XP, got %d", next.XP)
	}
}

func TestFullTaskDominatesPartials(t *testing.T) {
	t.Parallel()
	s := baseState()
	s.Sessions[0].Tasks = []model.Task{
		{ID: "p1", Goal: model.GoalPartial, PartialPercent: 10, AssignmentID: "a1", Completed: true},
		{ID: "f1", Goal: model.GoalFull, AssignmentID: "a1"},
	}

	next := Reduce(s, ToggleTaskComplete{SessionID: "s1", TaskID: "f1"})
	if next.Assignments[0].Progress != 100 {
		t.Fatalf("completed full task must yield 100 regardless of partials, got %d", next.Assignments[0].Progress)
	}
}

func TestLevelAdvancesEveryFiveHundredXP(t *testing.T) {
	t.Parallel()
	s := baseState()
	tasks := make([]model.Task, 5)
	for i := range tasks {
		tasks[i] = model.Task{ID: string(rune('a' + i)), Goal: model.GoalFull}
	}
	s.Sessions[0].Tasks = tasks

	next := s
	for i := range tasks {
		next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: tasks[i].ID})
	}

	if next.XP != 500 {
		t.Fatalf("expected 500 XP, got %d", next.XP)
	}
	if next.Level != 1 {
		t.Fatalf("expected level 1 at 500 XP, got %d", next.Level)
	}
}

func TestAddAndDeleteTaskRecomputeProgress(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, AddTask{SessionID: "s1", Task: model.Task{
		ID: "t3", Goal: model.GoalPartial, PartialPercent: 20,
		AssignmentID: "a1", Completed: true,
	}})
	if next.Assignments[0].Progress != 20 {
		t.Fatalf("expected progress recomputed to 20 after add, got %d", next.Assignments[0].Progress)
	}

	next = Reduce(next, DeleteTask{SessionID: "s1", TaskID: "t3"})
	if next.Assignments[0].Progress != 0 {
		t.Fatalf("expected progress recomputed to 0 after delete, got %d", next.Assignments[0].Progress)
	}
	if len(next.Sessions[0].Tasks) != 2 {
		t.Fatalf("expected 2 tasks left, got %d", len(next.Sessions[0].Tasks))
	}
}

func TestAddAssignmentStartsAtZeroProgress(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, AddAssignment{Assignment: model.Assignment{
		ID: "a2", Name: "lab report", DueDate: "2026-04-01", Progress: 80,
	}})

	if next.Assignments[1].Progress != 0 {
		t.Fatalf("new assignment progress must start at 0, got %d", next.Assignments[1].Progress)
	}
}

func TestDeleteAssignmentLeavesTasksDangling(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, DeleteAssignment{AssignmentID: "a1"})
	if len(next.Assignments) != 0 {
		t.Fatalf("expected assignment removed")
	}
	if next.Sessions[0].Tasks[0].AssignmentID != "a1" {
		t.Fatalf("tasks must keep their assignment reference")
	}

	// A toggle on the dangling reference must not panic or resurrect it.
	next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: "t1"})
	if len(next.Assignments) != 0 {
		t.Fatalf("dangling reference must stay dangling")
	}
	if next.XP != 100 {
		t.Fatalf("XP still awarded for dangling-linked task, got %d", next.XP)
	}
}

func TestManualProgressOverrideDiverges(t *testing.T) {
	t.Parallel()
	s := baseState()

	next := Reduce(s, UpdateAssignmentProgress{AssignmentID: "a1", Progress: 77})
	if next.Assignments[0].Progress != 77 {
		t.Fatalf("expected manual override to 77, got %d", next.Assignments[0].Progress)
	}

	// The next task mutation re-derives and discards the override.
	next = Reduce(next, ToggleTaskComplete{SessionID: "s1", TaskID: "t2"})
	if next.Assignments[0].Progress != 30 {
		t.Fatalf("expected re-derived 30, got %d", next.Assignments[0].Progress)
	}
}

func TestUpdateSettingsMergesPatch(t *testing.T) {
	t.Parallel()
	s := baseState()

	dark := model.ThemeDark
	next := Reduce(s, UpdateSettings{Patch: model.SettingsPatch{Theme: &dark}})

	if next.Settings.Theme != model.ThemeDark {
		t.Fatalf("expected theme changed, got %q", next.Settings.Theme)
	}
	if !next.Settings.NotificationsEnabled {
		t.Fatalf("unpatched fields must be preserved")
	}
}

func TestLoadStateDefaultsNilTimers(t *testing.T) {
	t.Parallel()
	loaded := model.AppState{
		Sessions: []model.Session{{ID: "x", Date: "2026-01-01"}},
	}

	next := Reduce(baseState(), LoadState{State: loaded})
	if next.ActiveTimers == nil {
		t.Fatalf("expected timers map initialized")
	}
	if len(next.Sessions) != 1 || next.Sessions[0].ID != "x" {
		t.Fatalf("expected loaded sessions to replace current state")
	}
}

type bogusAction struct{}

func (bogusAction) isAction() {}

func TestUnknownActionIsNoop(t *testing.T) {
	t.Parallel()
	s := baseState()
	next := Reduce(s, bogusAction{})
	if len(next.Sessions) != 1 || next.XP != 0 {
		t.Fatalf("unknown action must return state unchanged")
	}
}
