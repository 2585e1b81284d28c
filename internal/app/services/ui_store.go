package services

import (
	"sync"
	"time"
)

// DefaultSnackbarDuration is how long a toast stays visible
const DefaultSnackbarDuration = 6 * time.Second

// DialogState describes the single modal dialog
type DialogState struct {
	IsOpen bool                   `json:"isOpen"`
	Type   string                 `json:"type"`
	Props  map[string]interface{} `json:"props,omitempty"`
}

// DialogStore holds the single active dialog descriptor
type DialogStore struct {
	mu    sync.RWMutex
	state DialogState
}

// NewDialogStore creates a closed dialog store
func NewDialogStore() *DialogStore {
	return &DialogStore{}
}

// OpenDialog replaces the active dialog
func (d *DialogStore) OpenDialog(dialogType string, props map[string]interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = DialogState{IsOpen: true, Type: dialogType, Props: props}
}

// CloseDialog hides the dialog but keeps its type for closing animations
func (d *DialogStore) CloseDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.IsOpen = false
}

// State returns the current dialog descriptor
func (d *DialogStore) State() DialogState {
	d.mu.RLock()
	defer d.mu.RUnlock()
	state := d.state
	if state.Props != nil {
		props := make(map[string]interface{}, len(state.Props))
		for k, v := range state.Props {
			props[k] = v
		}
		state.Props = props
	}
	return state
}

// Severity of a toast
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Snackbar is the toast currently visible
type Snackbar struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// NotificationStore is a single-slot toast with auto-dismiss
type NotificationStore struct {
	duration time.Duration

	mu      sync.Mutex
	current *Snackbar
	seq     uint64
	timer   *time.Timer
}

// NewNotificationStore creates a store whose toasts hide after duration;
// zero means DefaultSnackbarDuration.
func NewNotificationStore(duration time.Duration) *NotificationStore {
	if duration <= 0 {
		duration = DefaultSnackbarDuration
	}
	return &NotificationStore{duration: duration}
}

// ShowSnackbar replaces any visible toast and restarts the dismiss timer
func (n *NotificationStore) ShowSnackbar(message string, severity Severity) {
	if severity == "" {
		severity = SeverityInfo
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	seq := n.seq
	n.current = &Snackbar{Message: message, Severity: severity}
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.duration, func() { n.dismiss(seq) })
}

// dismiss hides the toast only if it is still the one seq showed
func (n *NotificationStore) dismiss(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq == seq {
		n.current = nil
	}
}

// Hide removes the visible toast immediately
func (n *NotificationStore) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
	}
}

// Current returns the visible toast, if any
func (n *NotificationStore) Current() (Snackbar, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Snackbar{}, false
	}
	return *n.current, true
}
