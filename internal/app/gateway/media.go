package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
)

// UploadMedia sends a file as multipart/form-data with postId and postType fields
func (c *Client) UploadMedia(ctx context.Context, upload models.MediaUpload) (models.Media, error) {
	const op = "uploadMedia"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("postId", upload.PostID.String()); err != nil {
		return models.Media{}, decodeError(op, err)
	}
	if err := writer.WriteField("postType", string(upload.PostType)); err != nil {
		return models.Media{}, decodeError(op, err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Filename))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return models.Media{}, decodeError(op, err)
	}
	if upload.Content != nil {
		if _, err := io.Copy(part, upload.Content); err != nil {
			return models.Media{}, decodeError(op, fmt.Errorf("read upload: %w", err))
		}
	}
	if err := writer.Close(); err != nil {
		return models.Media{}, decodeError(op, err)
	}

	body, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/media",
		body:        &buf,
		contentType: writer.FormDataContentType(),
	})
	if err != nil {
		return models.Media{}, err
	}

	media, err := dto.DecodeRecord[models.Media](body, "media")
	if err != nil {
		return models.Media{}, decodeError(op, err)
	}
	return media, nil
}

// GetMedia lists the media attached to one post
func (c *Client) GetMedia(ctx context.Context, postID models.ID, postType models.PostType) ([]models.Media, error) {
	return getList[models.Media](ctx, c, "getMedia", "/media", postQuery(postID, postType), "media")
}
