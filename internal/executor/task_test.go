package executor

import (
	"errors"
	"testing"
)

func TestTask_TakeOnce(t *testing.T) {
	ran := false
	task := NewTask(func() error {
		ran = true
		return nil
	})

	if task.State() != StateWaiting {
		t.Fatalf("new task state = %v, want waiting", task.State())
	}

	action, err := task.take(0)
	if err != nil {
		t.Fatalf("take() error = %v", err)
	}
	if task.State() != StateDispatched {
		t.Errorf("state after take = %v, want dispatched", task.State())
	}

	if err := action(); err != nil {
		t.Fatalf("action() error = %v", err)
	}
	if !ran {
		t.Error("action did not run")
	}
}

func TestTask_TakeTwice(t *testing.T) {
	task := NewTask(func() error { return nil })

	if _, err := task.take(7); err != nil {
		t.Fatalf("first take() error = %v", err)
	}

	_, err := task.take(7)
	var ad *AlreadyDispatchedError
	if !errors.As(err, &ad) {
		t.Fatalf("second take() = %v, want AlreadyDispatchedError", err)
	}
	if ad.TaskID != 7 {
		t.Errorf("AlreadyDispatchedError task = %d, want 7", ad.TaskID)
	}
}

func TestTask_Name(t *testing.T) {
	task := NewNamedTask("compact index", func() error { return nil })
	if task.Name() != "compact index" {
		t.Errorf("Name() = %q", task.Name())
	}
	if NewTask(func() error { return nil }).Name() != "" {
		t.Error("unnamed task should have empty name")
	}
}

func TestTaskState_String(t *testing.T) {
	if StateWaiting.String() != "waiting" || StateDispatched.String() != "dispatched" {
		t.Error("unexpected TaskState string values")
	}
	if TaskState(99).String() != "unknown" {
		t.Error("out-of-range TaskState should render unknown")
	}
}
