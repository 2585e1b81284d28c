package dto

import "time"

// SuccessResponse represents a standard success response for shell endpoints
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Redirect  string      `json:"redirect,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSuccessResponse creates a standard success response
func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Action is a single navigation choice offered by a view
type Action struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Snackbar is the toast currently shown to the user, if any
type Snackbar struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ViewResponse is what the shell renders for a route: the view name, its data
// and the toast that should be visible alongside it.
type ViewResponse struct {
	View     string      `json:"view"`
	Data     interface{} `json:"data,omitempty"`
	Actions  []Action    `json:"actions,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Snackbar *Snackbar   `json:"snackbar,omitempty"`
	DarkMode bool        `json:"darkMode"`
}

// HomeAction is the single recovery action on the notFound and error views
var HomeAction = Action{Label: "Go Home", Href: "/"}
