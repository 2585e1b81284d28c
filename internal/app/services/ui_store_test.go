package services

import (
	"testing"
	"time"
)

func TestDialogStore(t *testing.T) {
	d := NewDialogStore()
	d.OpenDialog("confirmDelete", map[string]interface{}{"id": "e1"})

	state := d.State()
	if !state.IsOpen || state.Type != "confirmDelete" || state.Props["id"] != "e1" {
		t.Fatalf("unexpected state %+v", state)
	}
	state.Props["id"] = "mutated"
	if d.State().Props["id"] != "e1" {
		t.Fatalf("state must be a copy")
	}

	d.CloseDialog()
	closed := d.State()
	if closed.IsOpen || closed.Type != "confirmDelete" {
		t.Fatalf("close must keep the type, got %+v", closed)
	}
}

func TestSnackbarAutoDismiss(t *testing.T) {
	n := NewNotificationStore(30 * time.Millisecond)
	n.ShowSnackbar("Saved", "")

	current, ok := n.Current()
	if !ok || current.Severity != SeverityInfo {
		t.Fatalf("expected info toast, got %+v", current)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := n.Current(); ok {
		t.Fatalf("toast must auto-dismiss")
	}
}

func TestStaleTimerKeepsNewerToast(t *testing.T) {
	n := NewNotificationStore(40 * time.Millisecond)
	n.ShowSnackbar("first", SeverityError)
	n.ShowSnackbar("second", SeveritySuccess)

	// the first toast's seq no longer matches
	n.dismiss(1)
	current, ok := n.Current()
	if !ok || current.Message != "second" {
		t.Fatalf("newer toast was hidden, got %+v", current)
	}

	n.Hide()
	if _, ok := n.Current(); ok {
		t.Fatalf("hide must clear the toast")
	}
}

func TestNotificationDefaultDuration(t *testing.T) {
	if n := NewNotificationStore(0); n.duration != DefaultSnackbarDuration {
		t.Fatalf("expected default duration, got %s", n.duration)
	}
}
