package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tempsuisse/platform/internal/ai"
	"github.com/tempsuisse/platform/internal/config"
	"github.com/tempsuisse/platform/internal/db"
	"github.com/tempsuisse/platform/internal/render"
	"github.com/tempsuisse/platform/internal/server/ratelimit"
	"github.com/tempsuisse/platform/internal/session"
)

// fakeDirectory is an in-memory Directory.
type fakeDirectory struct {
	mu       sync.Mutex
	agencies map[uuid.UUID]*db.Agency
	posts    map[uuid.UUID]*db.Post
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		agencies: make(map[uuid.UUID]*db.Agency),
		posts:    make(map[uuid.UUID]*db.Post),
	}
}

func (f *fakeDirectory) ListAgencies(_ context.Context, filter db.AgencyFilter) ([]*db.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*db.Agency
	for _, a := range f.agencies {
		if filter.Canton != "" && a.Canton != filter.Canton {
			continue
		}
		if filter.Specialty != "" {
			found := false
			for _, sp := range a.Specialties {
				if sp == filter.Specialty {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(a.Name), q) &&
				!strings.Contains(strings.ToLower(a.City), q) {
				continue
			}
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeDirectory) GetAgencyByID(_ context.Context, id uuid.UUID) (*db.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.agencies[id], nil
}

func (f *fakeDirectory) CreateAgency(_ context.Context, a *db.Agency) (*db.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *a
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.agencies[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeDirectory) UpdateAgency(_ context.Context, id uuid.UUID, a *db.Agency) (*db.Agency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.agencies[id]
	if !ok {
		return nil, nil
	}
	updated := *a
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	f.agencies[id] = &updated
	return &updated, nil
}

func (f *fakeDirectory) DeleteAgency(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.agencies[id]; !ok {
		return false, nil
	}
	delete(f.agencies, id)
	return true, nil
}

func (f *fakeDirectory) ListPosts(_ context.Context, publishedOnly bool) ([]*db.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*db.Post
	for _, p := range f.posts {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDirectory) GetPostBySlug(_ context.Context, slug string) (*db.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) CreatePost(_ context.Context, p *db.Post) (*db.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *p
	stored.ID = uuid.New()
	if stored.Slug == "" {
		stored.Slug = db.Slugify(stored.Title)
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.posts[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeDirectory) UpdatePost(_ context.Context, id uuid.UUID, p *db.Post) (*db.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	updated := *p
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	f.posts[id] = &updated
	return &updated, nil
}

func (f *fakeDirectory) DeletePost(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

// fakeAI answers deterministically so tests can assert the write-back.
type fakeAI struct {
	prefix string
	err    error
	block  chan struct{} // when set, calls wait until closed
}

func (f *fakeAI) answer(text string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.prefix + text, nil
}

func (f *fakeAI) GenerateProfile(_ context.Context, text string) (string, error) {
	return f.answer(text)
}

func (f *fakeAI) TranslateDescription(_ context.Context, _ ai.TranslateKind, text string) (string, error) {
	return f.answer(text)
}

func (f *fakeAI) TranslateSkill(_ context.Context, text string) (string, error) {
	return f.answer(text)
}

func (f *fakeAI) Close() error { return nil }

// fakeUploader records photo storage calls.
type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (f *fakeUploader) Upload(_ context.Context, _ io.Reader, publicID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, publicID)
	return "https://img.example/cv-photos/" + publicID, nil
}

func (f *fakeUploader) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	return nil
}

// fakeEngine "renders" a PDF by prefixing the HTML, so download assertions
// can look inside the artifact.
type fakeEngine struct {
	err     error
	release chan struct{} // when set, RenderPDF waits until closed
}

func (f *fakeEngine) RenderPDF(_ context.Context, html string) ([]byte, error) {
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("%PDF "), []byte(html)...), nil
}

type testServer struct {
	*Server
	dir    *fakeDirectory
	ai     *fakeAI
	engine *fakeEngine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	registry, err := render.NewRegistry()
	require.NoError(t, err)

	sessions := session.NewStore(0)
	t.Cleanup(sessions.Stop)

	password := &config.PasswordConfig{BcryptCost: 10}
	hash, err := password.HashPassword("admin-secret")
	require.NoError(t, err)

	dir := newFakeDirectory()
	fa := &fakeAI{prefix: "FR: "}
	fe := &fakeEngine{}

	srv, err := New(
		Config{Addr: ":0", AdminPasswordHash: hash},
		Deps{
			Directory: dir,
			Sessions:  sessions,
			Templates: registry,
			Engine:    fe,
			AI:        fa,
			Photos:    nil,
			JWT:       &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
			Password:  password,
			RateLimit: &ratelimit.Config{Enabled: false},
		},
	)
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)

	return &testServer{Server: srv, dir: dir, ai: fa, engine: fe}
}

// do runs one request against the composed handler.
func (ts *testServer) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// newSession creates a session over HTTP and returns its base path.
func (ts *testServer) newSession(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/cv/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[SessionResponse](t, rec)
	return fmt.Sprintf("/cv/sessions/%s", resp.SessionID)
}

// adminToken logs in and returns an Authorization header value.
func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/auth/login", LoginRequest{Password: "admin-secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[LoginResponse](t, rec)
	return "Bearer " + resp.Token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
