package services

import (
	"context"

	"github.com/yigit/uniconnect/internal/app/models"
)

// AddEvent creates an event and appends it to the cache on success
func (s *SessionStore) AddEvent(ctx context.Context, event models.Event) Result[models.Event] {
	generation, open := s.currentGeneration()
	if !open {
		return fail[models.Event]("Session closed")
	}
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	created, err := s.gateway.AddEvent(ctx, event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Error adding event")
		return failFrom[models.Event](err, "Failed to add event")
	}

	s.applyIf(generation, func() { s.events = appendUnique(s.events, created) })
	return succeed(created)
}

// DeleteEvent deletes an event and removes it from the cache on success.
// An id that is not cached still reaches the backend.
func (s *SessionStore) DeleteEvent(ctx context.Context, id models.ID) Result[Empty] {
	generation, open := s.currentGeneration()
	if !open {
		return fail[Empty]("Session closed")
	}
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	if err := s.gateway.DeleteEvent(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("event_id", id.String()).Msg("Error deleting event")
		return failFrom[Empty](err, "Failed to delete event")
	}

	s.applyIf(generation, func() { s.events = removeByID(s.events, id) })
	return succeed(Empty{})
}

// JoinEvent registers the current user for an event
func (s *SessionStore) JoinEvent(ctx context.Context, id models.ID) Result[models.Participant] {
	if _, open := s.currentGeneration(); !open {
		return fail[models.Participant]("Session closed")
	}
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	participant, err := s.gateway.JoinEvent(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("event_id", id.String()).Msg("Error joining event")
		return failFrom[models.Participant](err, "Failed to join event")
	}
	return succeed(participant)
}

// AddAccommodation creates an accommodation and appends it to the cache on success
func (s *SessionStore) AddAccommodation(ctx context.Context, acc models.Accommodation) Result[models.Accommodation] {
	generation, open := s.currentGeneration()
	if !open {
		return fail[models.Accommodation]("Session closed")
	}
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	created, err := s.gateway.AddAccommodation(ctx, acc)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Error adding accommodation")
		return failFrom[models.Accommodation](err, "Failed to add accommodation")
	}

	s.applyIf(generation, func() { s.accommodations = appendUnique(s.accommodations, created) })
	return succeed(created)
}

// DeleteAccommodation deletes an accommodation and removes it from the cache on success
func (s *SessionStore) DeleteAccommodation(ctx context.Context, id models.ID) Result[Empty] {
	generation, open := s.currentGeneration()
	if !open {
		return fail[Empty]("Session closed")
	}
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	if err := s.gateway.DeleteAccommodation(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("accommodation_id", id.String()).Msg("Error deleting accommodation")
		return failFrom[Empty](err, "Failed to delete accommodation")
	}

	s.applyIf(generation, func() { s.accommodations = removeByID(s.accommodations, id) })
	return succeed(Empty{})
}

// BookAccommodation creates a booking and appends it to the bookings cache on success
func (s *SessionStore) BookAccommodation(ctx context.Context, booking models.Booking) Result[models.Booking] {
	generation, open := s.currentGeneration()
	if !open {
		return fail[models.Booking]("Session closed")
	}
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	created, err := s.gateway.BookAccommodation(ctx, booking)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Error booking accommodation")
		return failFrom[models.Booking](err, "Failed to book accommodation")
	}

	s.applyIf(generation, func() { s.bookings = appendUnique(s.bookings, created) })
	return succeed(created)
}

// UpdateProfile saves the profile and replaces the persisted current user
func (s *SessionStore) UpdateProfile(ctx context.Context, user models.User) Result[models.User] {
	current, ok := s.CurrentUser()
	if !ok {
		return fail[models.User]("You must be logged in to update your profile")
	}
	generation, open := s.currentGeneration()
	if !open {
		return fail[models.User]("Session closed")
	}
	if user.ID == "" {
		user.ID = current.ID
	}

	scoped, cancel := s.scoped(ctx)
	defer cancel()

	saved, err := s.gateway.UpdateProfile(scoped, user)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Error updating profile")
		return failFrom[models.User](err, "Failed to update profile")
	}
	if saved.IsEmpty() {
		saved = user
	}

	s.persistMu.Lock()
	applied := s.applyIf(generation, func() {
		updated := saved
		s.user = &updated
	})
	if applied {
		s.persistUser(ctx, saved)
	}
	s.persistMu.Unlock()

	return succeed(saved)
}

// SubmitFeedback sends the feedback or contact form
func (s *SessionStore) SubmitFeedback(ctx context.Context, feedback models.Feedback) Result[Empty] {
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	if err := s.gateway.SubmitFeedback(ctx, feedback); err != nil {
		s.logger.Warn().Err(err).Msg("Error submitting feedback")
		return failFrom[Empty](err, "Failed to submit feedback")
	}
	return succeed(Empty{})
}

// UploadMedia attaches a file to a post
func (s *SessionStore) UploadMedia(ctx context.Context, upload models.MediaUpload) Result[models.Media] {
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	media, err := s.gateway.UploadMedia(ctx, upload)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", upload.PostID.String()).Msg("Error uploading media")
		return failFrom[models.Media](err, "Failed to upload media")
	}
	return succeed(media)
}

// GetMedia lists the media of one post
func (s *SessionStore) GetMedia(ctx context.Context, postID models.ID, postType models.PostType) Result[[]models.Media] {
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	media, err := s.gateway.GetMedia(ctx, postID, postType)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", postID.String()).Msg("Error loading media")
		return failFrom[[]models.Media](err, "Failed to load media")
	}
	return succeed(dedupByID(media))
}
