package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
)

// AddEvent creates an event
func (c *Client) AddEvent(ctx context.Context, event models.Event) (models.Event, error) {
	return postRecord[models.Event](ctx, c, "addEvent", http.MethodPost, "/events", event, "event")
}

// DeleteEvent removes an event by id
func (c *Client) DeleteEvent(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, request{op: "deleteEvent", method: http.MethodDelete, path: "/events/" + url.PathEscape(id.String())})
	return err
}

// GetEvents lists all events
func (c *Client) GetEvents(ctx context.Context) ([]models.Event, error) {
	return getList[models.Event](ctx, c, "getEvents", "/events", nil, "events")
}

// JoinEvent registers the current user as a participant
func (c *Client) JoinEvent(ctx context.Context, id models.ID) (models.Participant, error) {
	body, err := c.do(ctx, request{op: "joinEvent", method: http.MethodPost, path: "/events/" + url.PathEscape(id.String()) + "/participants"})
	if err != nil {
		return models.Participant{}, err
	}
	participant := models.Participant{EventID: id}
	if len(body) == 0 {
		return participant, nil
	}
	// some backends answer with just a message, which is still a success
	if decoded, err := dto.DecodeRecord[models.Participant](body, "participant"); err == nil {
		if decoded.EventID == "" {
			decoded.EventID = id
		}
		participant = decoded
	}
	return participant, nil
}

// AddAccommodation creates an accommodation listing
func (c *Client) AddAccommodation(ctx context.Context, acc models.Accommodation) (models.Accommodation, error) {
	return postRecord[models.Accommodation](ctx, c, "addAccommodation", http.MethodPost, "/accommodations", acc, "accommodation")
}

// DeleteAccommodation removes an accommodation by id
func (c *Client) DeleteAccommodation(ctx context.Context, id models.ID) error {
	_, err := c.do(ctx, request{op: "deleteAccommodation", method: http.MethodDelete, path: "/accommodations/" + url.PathEscape(id.String())})
	return err
}

// GetAccommodations lists all accommodations
func (c *Client) GetAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	return getList[models.Accommodation](ctx, c, "getAccommodations", "/accommodations", nil, "accommodations")
}

// BookAccommodation creates a booking
func (c *Client) BookAccommodation(ctx context.Context, booking models.Booking) (models.Booking, error) {
	return postRecord[models.Booking](ctx, c, "bookAccommodation", http.MethodPost, "/bookings", booking, "booking")
}

// GetBookings lists the current user's bookings
func (c *Client) GetBookings(ctx context.Context) ([]models.Booking, error) {
	return getList[models.Booking](ctx, c, "getBookings", "/bookings", nil, "bookings")
}

// AddComment posts a comment on an event or accommodation
func (c *Client) AddComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	return postRecord[models.Comment](ctx, c, "addComment", http.MethodPost, "/comments", comment, "comment")
}

// GetComments lists the comments of one post
func (c *Client) GetComments(ctx context.Context, postID models.ID, postType models.PostType) ([]models.Comment, error) {
	return getList[models.Comment](ctx, c, "getComments", "/comments", postQuery(postID, postType), "comments")
}

func postQuery(postID models.ID, postType models.PostType) url.Values {
	q := url.Values{}
	q.Set("postId", postID.String())
	q.Set("postType", string(postType))
	return q
}
