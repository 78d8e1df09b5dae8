package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) register(c *gin.Context) {
	var req api.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid input")
		return
	}

	token, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.TokenResponse{Message: api.MessageRegistered, AccessToken: token})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req api.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid input")
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			ErrorResponse(c, http.StatusUnauthorized, "invalid user name or password")
			return
		}
		HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.TokenResponse{Message: api.MessageLoggedIn, AccessToken: token})
}

func (s *HTTPServer) listPosts(c *gin.Context) {
	posts, err := s.posts.List(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	out := make([]*api.Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPost(p))
	}
	c.JSON(http.StatusOK, out)
}

func (s *HTTPServer) getPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := s.posts.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post))
}

func (s *HTTPServer) createPost(c *gin.Context) {
	var req api.PostFields
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid input")
		return
	}

	post, err := s.posts.Create(c.Request.Context(), identityFrom(c), toFields(req))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post))
}

func (s *HTTPServer) updatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	var req api.PostFields
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid input")
		return
	}

	post, err := s.posts.Update(c.Request.Context(), identityFrom(c), id, toFields(req))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIPost(post))
}

func (s *HTTPServer) deletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := s.posts.Delete(c.Request.Context(), identityFrom(c), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.PostID{ID: id})
}

func (s *HTTPServer) photoUploadURL(c *gin.Context) {
	up, err := s.posts.PhotoUploadURL(c.Request.Context(), identityFrom(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.PhotoUploadResponse{Key: up.Key, URL: up.URL})
}

func (s *HTTPServer) getPhotoURL(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	url, err := s.posts.PhotoURL(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.PhotoURLResponse{URL: url})
}

// postID parses the :id path parameter, answering 400 itself when it is not
// a positive integer.
func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return 0, false
	}
	return id, true
}

func toAPIPost(p *models.Post) *api.Post {
	return &api.Post{
		ID:          p.ID,
		Owner:       p.Owner,
		Title:       p.Title,
		Description: p.Description,
		Photo:       p.Photo,
	}
}

func toFields(f api.PostFields) models.PostFields {
	return models.PostFields{Title: f.Title, Description: f.Description, Photo: f.Photo}
}
