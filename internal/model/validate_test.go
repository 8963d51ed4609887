package model

import "testing"

func validTask() Task {
	return Task{ID: "t1", Name: "read chapter", Goal: GoalFull}
}

func TestTaskValidation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{"valid full task", func(*Task) {}, false},
		{"valid partial task", func(tk *Task) {
			tk.Goal = GoalPartial
			tk.PartialPercent = 30
		}, false},
		{"unset partial percent allowed", func(tk *Task) {
			tk.Goal = GoalPartial
		}, false},
		{"missing name", func(tk *Task) { tk.Name = "" }, true},
		{"missing id", func(tk *Task) { tk.ID = "" }, true},
		{"bad goal", func(tk *Task) { tk.Goal = "half" }, true},
		{"percent too high", func(tk *Task) { tk.PartialPercent = 101 }, true},
		{"percent too low", func(tk *Task) { tk.PartialPercent = -1 }, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := validTask()
			tc.mutate(&task)
			err := ValidateStruct(task)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateStruct(%+v) error = %v, wantErr %v", task, err, tc.wantErr)
			}
		})
	}
}

func TestAssignmentValidation(t *testing.T) {
	t.Parallel()
	good := Assignment{ID: "a1", Name: "essay", DueDate: "2026-03-10"}
	if err := ValidateStruct(good); err != nil {
		t.Fatalf("expected valid assignment, got %v", err)
	}

	bad := good
	bad.DueDate = "10/03/2026"
	if err := ValidateStruct(bad); err == nil {
		t.Fatalf("expected error for non-ISO due date")
	}

	over := good
	over.Progress = 150
	if err := ValidateStruct(over); err == nil {
		t.Fatalf("expected error for progress above 100")
	}
}

func TestSettingsValidation(t *testing.T) {
	t.Parallel()
	if err := ValidateStruct(DefaultSettings()); err != nil {
		t.Fatalf("default settings must validate, got %v", err)
	}

	bad := DefaultSettings()
	bad.Theme = "sepia"
	if err := ValidateStruct(bad); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
