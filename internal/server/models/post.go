package models

// Post is a piece of content owned by the user who created it. Content fields
// are nullable: they may be omitted on creation.
type Post struct {
	ID          int64
	Owner       string
	Title       *string
	Description *string
	Photo       *string
}

// PostFields carries the client-editable part of a Post.
type PostFields struct {
	Title       *string
	Description *string
	Photo       *string
}

// Complete reports whether every field is set, as required for updates.
func (f PostFields) Complete() bool {
	return f.Title != nil && f.Description != nil && f.Photo != nil
}

// PhotoUpload is a presigned upload target for a post photo. Key is what the
// client stores in the post's Photo field afterwards.
type PhotoUpload struct {
	Key string
	URL string
}
