package api

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Credentials is the body of Register and Login.
type Credentials struct {
	Username string `json:"user_name"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// Post is the wire form of a post. Absent content fields are null.
type Post struct {
	ID          int64   `json:"id"`
	Owner       string  `json:"user_name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
}

// PostFields is the client-editable part of a post.
type PostFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
}

type ListPostsRequest struct{}

type ListPostsResponse struct {
	Posts []*Post `json:"posts"`
}

type PostID struct {
	ID int64 `json:"id"`
}

type UpdatePostRequest struct {
	ID int64 `json:"id"`
	PostFields
}

type PhotoUploadRequest struct{}

type PhotoUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type PhotoURLResponse struct {
	URL string `json:"url"`
}

// Success messages of Register and Login.
const (
	MessageRegistered = "User registered successfully"
	MessageLoggedIn   = "Login successful"
)
