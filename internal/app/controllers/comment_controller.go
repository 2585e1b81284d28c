package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/services"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// CommentController handles comments and media attached to posts
type CommentController struct {
	shell
	comments *services.CommentStore
}

// NewCommentController creates a new CommentController
func NewCommentController(
	session *services.SessionStore,
	comments *services.CommentStore,
	notifications *services.NotificationStore,
	logger zerolog.Logger,
) *CommentController {
	return &CommentController{
		shell:    shell{session: session, notifications: notifications, logger: logger},
		comments: comments,
	}
}

// postQuery reads postId and postType from the query string
func postQuery(c *gin.Context) (models.ID, models.PostType, error) {
	postID := models.ID(c.Query("postId"))
	postType := models.PostType(c.Query("postType"))
	if postID == "" {
		return "", "", apperrors.NewBadRequestError("postId is required")
	}
	if !postType.Valid() {
		return "", "", apperrors.NewBadRequestError("postType must be EVENT or ACCOMMODATION")
	}
	return postID, postType, nil
}

// ListComments refreshes and renders the comments of one post
func (cc *CommentController) ListComments(c *gin.Context) {
	postID, postType, err := postQuery(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	comments := cc.comments.FetchComments(c.Request.Context(), postID, postType)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(comments, ""))
}

// CreateComment posts a comment as the current user
func (cc *CommentController) CreateComment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}
	form, ok := middleware.BindAndValidate[dto.CommentForm](c)
	if !ok {
		return
	}

	res := cc.comments.AddComment(c.Request.Context(), form.ToModel(&user))
	respond(cc.shell, c, res, http.StatusCreated, "Comment added")
}

// ListMedia renders the media of one post
func (cc *CommentController) ListMedia(c *gin.Context) {
	postID, postType, err := postQuery(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	res := cc.session.GetMedia(c.Request.Context(), postID, postType)
	respond(cc.shell, c, res, http.StatusOK, "")
}

// UploadMedia attaches the multipart "file" to a post
func (cc *CommentController) UploadMedia(c *gin.Context) {
	postID := models.ID(c.PostForm("postId"))
	postType := models.PostType(c.PostForm("postType"))
	fields := map[string]string{}
	if postID == "" {
		fields["postId"] = "Post ID is required"
	}
	if !postType.Valid() {
		fields["postType"] = "Post type must be one of: EVENT ACCOMMODATION"
	}

	header, err := c.FormFile("file")
	if err != nil {
		fields["file"] = "File is required"
	}
	if len(fields) > 0 {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Validation failed", fields))
		return
	}

	file, err := header.Open()
	if err != nil {
		cc.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to open uploaded file")
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Could not read the uploaded file"))
		return
	}
	defer file.Close()

	res := cc.session.UploadMedia(c.Request.Context(), models.MediaUpload{
		PostID:      postID,
		PostType:    postType,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	respond(cc.shell, c, res, http.StatusCreated, "Media uploaded")
}
