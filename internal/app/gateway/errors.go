package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// Kind classifies a gateway failure
type Kind string

const (
	KindTransport   Kind = "transport"
	KindTimeout     Kind = "timeout"
	KindApplication Kind = "application"
	KindDecode      Kind = "decode"
)

// GatewayError is returned by every gateway operation that fails.
// Message is the backend's own message when it sent one and may be empty.
type GatewayError struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

// Unwrap exposes both the kind sentinel and the underlying cause
func (e *GatewayError) Unwrap() []error {
	errs := []error{kindSentinel(e.Kind)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// UserMessage is the text shown in a toast for this failure
func (e *GatewayError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindTimeout:
		return "The server took too long to respond. Please try again."
	case KindTransport:
		return "Unable to reach the server. Please check your connection."
	case KindDecode:
		return "Invalid response from server"
	}
	return "Something went wrong. Please try again."
}

func kindSentinel(k Kind) error {
	switch k {
	case KindTimeout:
		return apperrors.ErrTimeout
	case KindApplication:
		return apperrors.ErrApplication
	case KindDecode:
		return apperrors.ErrDecode
	}
	return apperrors.ErrTransport
}

// classifyTransport decides whether a failed round trip was a timeout
func classifyTransport(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}

// MessageFor returns the toast text for err, falling back to fallback for
// errors that did not come from the gateway.
func MessageFor(err error, fallback string) string {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.UserMessage()
	}
	if err != nil && errors.Is(err, context.Canceled) {
		return "Request cancelled"
	}
	return fallback
}

// IsUnreachable reports whether err means the backend could not be reached
// at all, as opposed to answering with a failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, apperrors.ErrTransport) || errors.Is(err, apperrors.ErrTimeout)
}
