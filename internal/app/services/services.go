// Package services holds the client state containers: the session store,
// the comment store and the dialog and notification stores. Each one guards
// its state with a mutex and hands out copies, so readers never observe a
// partially applied update.
package services

import (
	"context"

	"github.com/yigit/uniconnect/internal/app/gateway"
	"github.com/yigit/uniconnect/internal/app/models"
)

// Gateway is the backend surface the session store depends on
type Gateway interface {
	Signup(ctx context.Context, payload models.SignupPayload) error
	VerifyOtp(ctx context.Context, email, otp string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	SubmitFeedback(ctx context.Context, feedback models.Feedback) error
	UpdateProfile(ctx context.Context, user models.User) (models.User, error)

	AddEvent(ctx context.Context, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, id models.ID) error
	GetEvents(ctx context.Context) ([]models.Event, error)
	JoinEvent(ctx context.Context, id models.ID) (models.Participant, error)

	AddAccommodation(ctx context.Context, acc models.Accommodation) (models.Accommodation, error)
	DeleteAccommodation(ctx context.Context, id models.ID) error
	GetAccommodations(ctx context.Context) ([]models.Accommodation, error)
	BookAccommodation(ctx context.Context, booking models.Booking) (models.Booking, error)
	GetBookings(ctx context.Context) ([]models.Booking, error)

	UploadMedia(ctx context.Context, upload models.MediaUpload) (models.Media, error)
	GetMedia(ctx context.Context, postID models.ID, postType models.PostType) ([]models.Media, error)

	Token() string
	ClearToken()
}

// CommentGateway is the backend surface the comment store depends on
type CommentGateway interface {
	AddComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComments(ctx context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error)
}

var (
	_ Gateway        = (*gateway.Client)(nil)
	_ CommentGateway = (*gateway.Client)(nil)
)

// Result is what every mutating operation returns instead of an error.
// Record is only meaningful when Success is true; Redirect, when set, is
// where the caller should navigate next.
type Result[T any] struct {
	Success  bool   `json:"success"`
	Record   T      `json:"record,omitempty"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func succeed[T any](record T) Result[T] {
	return Result[T]{Success: true, Record: record}
}

func fail[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

func failFrom[T any](err error, fallback string) Result[T] {
	return Result[T]{Message: gateway.MessageFor(err, fallback)}
}

// Empty is the record type of operations that return nothing
type Empty struct{}

// dedupByID collapses duplicate ids. The first occurrence keeps its
// position and the last occurrence supplies the value.
func dedupByID[T models.Keyed](items []T) []T {
	out := make([]T, 0, len(items))
	index := make(map[models.ID]int, len(items))
	for _, item := range items {
		if i, seen := index[item.Key()]; seen {
			out[i] = item
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}

// appendUnique returns a new slice with item appended unless its id is
// already present, in which case items is returned unchanged.
func appendUnique[T models.Keyed](items []T, item T) []T {
	for _, existing := range items {
		if existing.Key() == item.Key() {
			return items
		}
	}
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// removeByID returns a new slice without id
func removeByID[T models.Keyed](items []T, id models.ID) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Key() != id {
			out = append(out, item)
		}
	}
	return out
}

func cloneSlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
