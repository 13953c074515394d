package server

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/tempsuisse/platform/internal/db"
)

// homeLatestPosts caps the posts shown on the landing page.
const homeLatestPosts = 3

// HomeResponse aggregates what the landing page needs in one request.
type HomeResponse struct {
	Agencies []*db.Agency `json:"agencies"`
	Posts    []*db.Post   `json:"posts"`
}

// handleHome fetches agencies and the latest posts concurrently.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var resp HomeResponse

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		agencies, err := s.store.ListAgencies(ctx, db.AgencyFilter{})
		if err != nil {
			return err
		}
		resp.Agencies = agencies
		return nil
	})
	g.Go(func() error {
		posts, err := s.store.ListPosts(ctx, true)
		if err != nil {
			return err
		}
		if len(posts) > homeLatestPosts {
			posts = posts[:homeLatestPosts]
		}
		resp.Posts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if resp.Agencies == nil {
		resp.Agencies = []*db.Agency{}
	}
	if resp.Posts == nil {
		resp.Posts = []*db.Post{}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
