package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempsuisse/platform/internal/db"
)

func seedAgency(t *testing.T, ts *testServer, token string, a db.Agency) db.Agency {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/agencies", a, "Authorization", token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[db.Agency](t, rec)
}

func TestAgencyCRUDRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)

	agency := db.Agency{Name: "Interim Plus", City: "Lausanne", Canton: "VD"}

	rec := ts.do(t, http.MethodPost, "/agencies", agency)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/agencies", agency, "Authorization", "Bearer bogus")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := ts.adminToken(t)
	created := seedAgency(t, ts, token, agency)
	assert.NotEmpty(t, created.ID)

	rec = ts.do(t, http.MethodDelete, "/agencies/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/agencies/"+created.ID.String(), nil, "Authorization", token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAgencyReadIsPublic(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	created := seedAgency(t, ts, token, db.Agency{
		Name: "Manpro Genève", City: "Genève", Canton: "GE",
		Specialties: []string{"horlogerie"},
	})

	rec := ts.do(t, http.MethodGet, "/agencies/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[db.Agency](t, rec)
	assert.Equal(t, "Manpro Genève", got.Name)

	rec = ts.do(t, http.MethodGet, "/agencies/6f1e1a1e-0000-4000-8000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAgencyListFilters(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	seedAgency(t, ts, token, db.Agency{
		Name: "Alpha Jobs", City: "Lausanne", Canton: "VD",
		Specialties: []string{"construction"},
	})
	seedAgency(t, ts, token, db.Agency{
		Name: "Beta Travail", City: "Genève", Canton: "GE",
		Specialties: []string{"horlogerie", "construction"},
	})

	rec := ts.do(t, http.MethodGet, "/agencies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]db.Agency](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha Jobs", all[0].Name)

	byCanton := decodeBody[[]db.Agency](t, ts.do(t, http.MethodGet, "/agencies?canton=GE", nil))
	require.Len(t, byCanton, 1)
	assert.Equal(t, "Beta Travail", byCanton[0].Name)

	bySpecialty := decodeBody[[]db.Agency](t, ts.do(t, http.MethodGet, "/agencies?specialty=horlogerie", nil))
	require.Len(t, bySpecialty, 1)

	byQuery := decodeBody[[]db.Agency](t, ts.do(t, http.MethodGet, "/agencies?q=lausanne", nil))
	require.Len(t, byQuery, 1)
	assert.Equal(t, "Alpha Jobs", byQuery[0].Name)
}

func TestAgencyValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	rec := ts.do(t, http.MethodPost, "/agencies", db.Agency{City: "Sion"}, "Authorization", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name")
}

func TestAgencyUpdate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	created := seedAgency(t, ts, token, db.Agency{Name: "Old Name", City: "Berne", Canton: "BE"})

	created.Name = "New Name"
	rec := ts.do(t, http.MethodPut, "/agencies/"+created.ID.String(), created, "Authorization", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "New Name", decodeBody[db.Agency](t, rec).Name)

	rec = ts.do(t, http.MethodPut, "/agencies/6f1e1a1e-0000-4000-8000-000000000000",
		db.Agency{Name: "X"}, "Authorization", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
