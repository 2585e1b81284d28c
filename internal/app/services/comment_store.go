package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
)

type commentKey struct {
	postID   models.ID
	postType models.PostType
}

// CommentStore caches comments per (postId, postType).
//
// Each fetch takes a sequence number for its key when it starts. A response
// is applied only if no later fetch for the same key has been applied
// already, so overlapping fetches resolve in request order rather than in
// completion order.
type CommentStore struct {
	gateway CommentGateway
	logger  zerolog.Logger

	mu       sync.RWMutex
	comments map[commentKey][]models.Comment
	issued   map[commentKey]uint64
	applied  map[commentKey]uint64
	// resets counts calls to Reset
	resets uint64
}

// NewCommentStore creates an empty comment store
func NewCommentStore(gw CommentGateway, logger zerolog.Logger) *CommentStore {
	return &CommentStore{
		gateway:  gw,
		logger:   logger.With().Str("component", "comment_store").Logger(),
		comments: make(map[commentKey][]models.Comment),
		issued:   make(map[commentKey]uint64),
		applied:  make(map[commentKey]uint64),
	}
}

// Comments returns a snapshot of the comments for one post
func (s *CommentStore) Comments(postID models.ID, postType models.PostType) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.comments[commentKey{postID, postType}])
}

// FetchComments replaces the cached comments of one post; other posts are
// untouched. A failed fetch leaves the cache as it was.
func (s *CommentStore) FetchComments(ctx context.Context, postID models.ID, postType models.PostType) []models.Comment {
	key := commentKey{postID, postType}

	s.mu.Lock()
	s.issued[key]++
	seq := s.issued[key]
	s.mu.Unlock()

	fetched, err := s.gateway.GetComments(ctx, postID, postType)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", postID.String()).Str("post_type", string(postType)).Msg("Error fetching comments")
		return s.Comments(postID, postType)
	}

	// the backend may ignore the filter, so keep only this post's comments
	matching := make([]models.Comment, 0, len(fetched))
	for _, c := range fetched {
		if c.PostID == "" || c.PostID == postID {
			c.PostID = postID
			if c.PostType == "" {
				c.PostType = postType
			}
			if c.PostType == postType {
				matching = append(matching, c)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied[key] {
		s.logger.Debug().Str("post_id", postID.String()).Uint64("seq", seq).Msg("Discarding stale comment fetch")
		return cloneSlice(s.comments[key])
	}
	s.applied[key] = seq
	s.comments[key] = dedupByID(matching)
	return cloneSlice(s.comments[key])
}

// Reset forgets every cached comment. Fetches still in flight are dropped
// when they complete, so nothing cached for one user reaches the next.
func (s *CommentStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.issued {
		s.issued[key]++
		s.applied[key] = s.issued[key]
	}
	s.comments = make(map[commentKey][]models.Comment)
	s.resets++
	s.logger.Debug().Msg("Comment cache cleared")
}

// AddComment posts a comment, appends it to its post's cache and refreshes
// that post's comments.
func (s *CommentStore) AddComment(ctx context.Context, comment models.Comment) Result[models.Comment] {
	s.mu.RLock()
	resets := s.resets
	s.mu.RUnlock()

	created, err := s.gateway.AddComment(ctx, comment)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", comment.PostID.String()).Msg("Error adding comment")
		return failFrom[models.Comment](err, "Failed to add comment")
	}
	if created.PostID == "" {
		created.PostID = comment.PostID
	}
	if created.PostType == "" {
		created.PostType = comment.PostType
	}

	key := commentKey{created.PostID, created.PostType}
	s.mu.Lock()
	if s.resets != resets {
		s.mu.Unlock()
		return succeed(created)
	}
	s.comments[key] = appendUnique(s.comments[key], created)
	s.mu.Unlock()

	s.FetchComments(ctx, created.PostID, created.PostType)
	return succeed(created)
}
