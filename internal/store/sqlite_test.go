package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/tpham/study-tracker/internal/model"
	"github.com/tpham/study-tracker/tests/testutil"
)

func TestLoadStateEmptyDatabaseReturnsDefaults(t *testing.T) {
	t.Parallel()
	g := testutil.NewTestGateway(t)

	s := g.LoadState(context.Background())

	if len(s.Sessions) != 0 || len(s.Assignments) != 0 {
		t.Fatalf("expected empty collections, got %+v", s)
	}
	if s.ActiveTimers == nil {
		t.Fatalf("expected initialized timers map")
	}
	if s.Settings != model.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", s.Settings)
	}
	if s.XP != 0 || s.Level != 0 {
		t.Fatalf("expected zero gamification counters")
	}
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	t.Parallel()
	g := testutil.NewTestGateway(t)
	ctx := context.Background()

	in := model.AppState{
		Sessions: []model.Session{
			{
				ID:               "s1",
				Date:             "2026-03-01",
				Duration:         45,
				ReminderInterval: 1500,
				Tasks: []model.Task{
					{ID: "t1", Name: "read", Goal: model.GoalFull, Completed: true, AssignmentID: "a1"},
					{ID: "t2", Name: "notes", Goal: model.GoalPartial, PartialPercent: 30},
				},
			},
		},
		Assignments: []model.Assignment{
			{ID: "a1", Name: "essay", DueDate: "2026-03-10", Progress: 100},
		},
		ActiveTimers: model.ActiveTimers{"s1": 2701},
		Settings: model.Settings{
			NotificationsEnabled: false,
			Theme:                model.ThemeDark,
			PedometerEnabled:     true,
		},
		XP:    650,
		Level: 1,
	}

	if err := g.SaveState(ctx, in); err != nil {
		t.Fatalf("saving state: %v", err)
	}

	out := g.LoadState(ctx)

	if len(out.Sessions) != 1 || len(out.Sessions[0].Tasks) != 2 {
		t.Fatalf("sessions did not round-trip: %+v", out.Sessions)
	}
	if out.Sessions[0].Tasks[0] != in.Sessions[0].Tasks[0] {
		t.Fatalf("task did not round-trip: %+v", out.Sessions[0].Tasks[0])
	}
	if out.Assignments[0] != in.Assignments[0] {
		t.Fatalf("assignment did not round-trip: %+v", out.Assignments[0])
	}
	if out.ActiveTimers["s1"] != 2701 {
		t.Fatalf("timers did not round-trip: %+v", out.ActiveTimers)
	}
	if out.Settings != in.Settings {
		t.Fatalf("settings did not round-trip: %+v", out.Settings)
	}
	if out.XP != 650 || out.Level != 1 {
		t.Fatalf("gamification did not round-trip: XP=%d Level=%d", out.XP, out.Level)
	}
}

func TestSaveStateOverwritesPreviousSnapshot(t *testing.T) {
	t.Parallel()
	g := testutil.NewTestGateway(t)
	ctx := context.Background()

	first := model.NewAppState()
	first.Sessions = []model.Session{{ID: "s1", Date: "2026-03-01"}}
	if err := g.SaveState(ctx, first); err != nil {
		t.Fatalf("saving first state: %v", err)
	}

	second := model.NewAppState()
	second.Sessions = []model.Session{{ID: "s2", Date: "2026-03-02"}}
	if err := g.SaveState(ctx, second); err != nil {
		t.Fatalf("saving second state: %v", err)
	}

	out := g.LoadState(ctx)
	if len(out.Sessions) != 1 || out.Sessions[0].ID != "s2" {
		t.Fatalf("expected latest snapshot only, got %+v", out.Sessions)
	}
}

func TestReminderHistory(t *testing.T) {
	t.Parallel()
	g := testutil.NewTestGateway(t)
	ctx := context.Background()

	rem := model.Reminder{
		SessionID: "s1",
		Kind:      model.ReminderKindStudy,
		Message:   "Time to study!",
	}
	if err := g.RecordReminder(ctx, rem); err != nil {
		t.Fatalf("recording reminder: %v", err)
	}

	unread, err := g.UnreadReminders(ctx)
	if err != nil {
		t.Fatalf("querying unread: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("expected 1 unread reminder, got %d", len(unread))
	}
	if unread[0].ID == "" {
		t.Fatalf("expected generated reminder id")
	}
	if unread[0].Message != "Time to study!" || unread[0].Kind != model.ReminderKindStudy {
		t.Fatalf("reminder did not round-trip: %+v", unread[0])
	}

	if err := g.MarkReminderRead(ctx, unread[0].ID); err != nil {
		t.Fatalf("marking read: %v", err)
	}
	unread, err = g.UnreadReminders(ctx)
	if err != nil {
		t.Fatalf("querying unread again: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("expected no unread reminders after marking, got %d", len(unread))
	}
}

func TestReminderExistsSince(t *testing.T) {
	t.Parallel()
	g := testutil.NewTestGateway(t)
	ctx := context.Background()

	rem := model.Reminder{
		AssignmentID: "a1",
		Kind:         model.ReminderKindAssignment,
		Message:      "essay due tomorrow",
		CreatedAt:    time.Now(),
	}
	if err := g.RecordReminder(ctx, rem); err != nil {
		t.Fatalf("recording reminder: %v", err)
	}

	exists, err := g.ReminderExistsSince(ctx, "a1", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("checking existence: %v", err)
	}
	if !exists {
		t.Fatalf("expected reminder found within the last hour")
	}

	exists, err = g.ReminderExistsSince(ctx, "a1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("checking future window: %v", err)
	}
	if exists {
		t.Fatalf("expected no reminder in a future window")
	}

	exists, err = g.ReminderExistsSince(ctx, "other", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("checking other assignment: %v", err)
	}
	if exists {
		t.Fatalf("expected no reminder for a different assignment")
	}
}
