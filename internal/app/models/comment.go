package models

import "io"

// Comment is attached to an event or an accommodation
type Comment struct {
	ID       ID       `json:"id"`
	PostID   ID       `json:"postId"`
	PostType PostType `json:"postType"`
	UserID   ID       `json:"userId"`
	UserName string   `json:"userName"`
	Text     string   `json:"text"`
}

// Key implements Keyed
func (c Comment) Key() ID { return c.ID }

// Media is an uploaded file attached to a post
type Media struct {
	ID        ID       `json:"id"`
	PostID    ID       `json:"postId,omitempty"`
	PostType  PostType `json:"postType,omitempty"`
	URL       string   `json:"url"`
	MediaType string   `json:"mediaType,omitempty"`
}

// Key implements Keyed
func (m Media) Key() ID { return m.ID }

// Feedback is the free-text form on the feedback and contact pages
type Feedback struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Text  string `json:"text"`
}

// MediaUpload is a file to attach to a post
type MediaUpload struct {
	PostID      ID
	PostType    PostType
	Filename    string
	ContentType string
	Content     io.Reader
}
