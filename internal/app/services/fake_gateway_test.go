package services

import (
	"context"
	"sync"

	"github.com/yigit/uniconnect/internal/app/gateway"
	"github.com/yigit/uniconnect/internal/app/models"
)

// fakeGateway records calls and answers from optional hooks
type fakeGateway struct {
	mu    sync.Mutex
	calls map[string]int
	token string

	signup              func(models.SignupPayload) error
	verifyOtp           func(email, otp string) (*models.User, error)
	login               func(email, password string) (*models.User, error)
	updateProfile       func(models.User) (models.User, error)
	addEvent            func(models.Event) (models.Event, error)
	deleteEvent         func(models.ID) error
	getEvents           func(context.Context) ([]models.Event, error)
	joinEvent           func(models.ID) (models.Participant, error)
	addAccommodation    func(models.Accommodation) (models.Accommodation, error)
	deleteAccommodation func(models.ID) error
	getAccommodations   func(context.Context) ([]models.Accommodation, error)
	getBookings         func(context.Context) ([]models.Booking, error)
	bookAccommodation   func(models.Booking) (models.Booking, error)
	getComments         func(context.Context, models.ID, models.PostType) ([]models.Comment, error)
	addComment          func(models.Comment) (models.Comment, error)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: make(map[string]int)}
}

func (f *fakeGateway) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeGateway) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func serverError(op string) error {
	return &gateway.GatewayError{Op: op, Kind: gateway.KindApplication, Status: 500}
}

func (f *fakeGateway) Signup(_ context.Context, p models.SignupPayload) error {
	f.record("signup")
	if f.signup != nil {
		return f.signup(p)
	}
	return nil
}

func (f *fakeGateway) VerifyOtp(_ context.Context, email, otp string) (*models.User, error) {
	f.record("verifyOtp")
	if f.verifyOtp != nil {
		return f.verifyOtp(email, otp)
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeGateway) Login(_ context.Context, email, password string) (*models.User, error) {
	f.record("login")
	if f.login != nil {
		return f.login(email, password)
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeGateway) SubmitFeedback(context.Context, models.Feedback) error {
	f.record("submitFeedback")
	return nil
}

func (f *fakeGateway) UpdateProfile(_ context.Context, u models.User) (models.User, error) {
	f.record("updateProfile")
	if f.updateProfile != nil {
		return f.updateProfile(u)
	}
	return u, nil
}

func (f *fakeGateway) AddEvent(_ context.Context, e models.Event) (models.Event, error) {
	f.record("addEvent")
	if f.addEvent != nil {
		return f.addEvent(e)
	}
	return e, nil
}

func (f *fakeGateway) DeleteEvent(_ context.Context, id models.ID) error {
	f.record("deleteEvent")
	if f.deleteEvent != nil {
		return f.deleteEvent(id)
	}
	return nil
}

func (f *fakeGateway) GetEvents(ctx context.Context) ([]models.Event, error) {
	f.record("getEvents")
	if f.getEvents != nil {
		return f.getEvents(ctx)
	}
	return []models.Event{}, nil
}

func (f *fakeGateway) JoinEvent(_ context.Context, id models.ID) (models.Participant, error) {
	f.record("joinEvent")
	if f.joinEvent != nil {
		return f.joinEvent(id)
	}
	return models.Participant{EventID: id}, nil
}

func (f *fakeGateway) AddAccommodation(_ context.Context, a models.Accommodation) (models.Accommodation, error) {
	f.record("addAccommodation")
	if f.addAccommodation != nil {
		return f.addAccommodation(a)
	}
	return a, nil
}

func (f *fakeGateway) DeleteAccommodation(_ context.Context, id models.ID) error {
	f.record("deleteAccommodation")
	if f.deleteAccommodation != nil {
		return f.deleteAccommodation(id)
	}
	return nil
}

func (f *fakeGateway) GetAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	f.record("getAccommodations")
	if f.getAccommodations != nil {
		return f.getAccommodations(ctx)
	}
	return []models.Accommodation{}, nil
}

func (f *fakeGateway) BookAccommodation(_ context.Context, b models.Booking) (models.Booking, error) {
	f.record("bookAccommodation")
	if f.bookAccommodation != nil {
		return f.bookAccommodation(b)
	}
	return b, nil
}

func (f *fakeGateway) GetBookings(ctx context.Context) ([]models.Booking, error) {
	f.record("getBookings")
	if f.getBookings != nil {
		return f.getBookings(ctx)
	}
	return []models.Booking{}, nil
}

func (f *fakeGateway) UploadMedia(_ context.Context, u models.MediaUpload) (models.Media, error) {
	f.record("uploadMedia")
	return models.Media{ID: "m1", PostID: u.PostID, PostType: u.PostType}, nil
}

func (f *fakeGateway) GetMedia(context.Context, models.ID, models.PostType) ([]models.Media, error) {
	f.record("getMedia")
	return []models.Media{{ID: "m1"}, {ID: "m1"}}, nil
}

func (f *fakeGateway) GetComments(ctx context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
	f.record("getComments")
	if f.getComments != nil {
		return f.getComments(ctx, postID, postType)
	}
	return []models.Comment{}, nil
}

func (f *fakeGateway) AddComment(_ context.Context, c models.Comment) (models.Comment, error) {
	f.record("addComment")
	if f.addComment != nil {
		return f.addComment(c)
	}
	return c, nil
}

func (f *fakeGateway) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeGateway) ClearToken() {
	f.mu.Lock()
	f.token = ""
	f.mu.Unlock()
}
