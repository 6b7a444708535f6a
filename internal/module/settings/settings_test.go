package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	path   string
	params url.Values
}

type fakeWriter struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (w *fakeWriter) WriteSetting(_ context.Context, path string, params url.Values) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call{path, params})
	return w.err
}

func (w *fakeWriter) SessionKey(ctx context.Context) string {
	return clockwork.SessionKey(clockwork.CookiesFromContext(ctx))
}

func setupRegistry(t *testing.T) (*gin.Engine, *Registry, *fakeWriter) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(config.Default(), 0)
	w := &fakeWriter{}
	r := gin.New()
	NewRouter(reg, w, nil).Register(r)
	return r, reg, w
}

// setup returns the preferences of requests sent without cookies.
func setup(t *testing.T) (*gin.Engine, *Store, *fakeWriter) {
	t.Helper()
	r, reg, w := setupRegistry(t)
	return r, reg.For(clockwork.AnonymousSession), w
}

func getAs(r http.Handler, target, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetSettings(t *testing.T) {
	r, store, _ := setup(t)
	store.SetItemsPerPage(30)

	rec := get(r, "/settings/web")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results Settings `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int{25, 30, 40, 50, 100}, body.Results.ItemsPerPageOptions)
	assert.Equal(t, 30, body.Results.ItemsPerPage)
	assert.Equal(t, "words", body.Results.DateFormat)
}

func TestDarkModeToggle(t *testing.T) {
	r, store, w := setup(t)

	require.Equal(t, http.StatusOK, get(r, "/settings/web/dark_mode/set").Code)
	assert.True(t, store.DarkMode())
	require.Equal(t, http.StatusOK, get(r, "/settings/web/dark_mode/unset").Code)
	assert.False(t, store.DarkMode())

	require.Len(t, w.calls, 2)
	assert.Equal(t, "dark_mode/set", w.calls[0].path)
	assert.Equal(t, "dark_mode/unset", w.calls[1].path)

	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/dark_mode/toggle").Code)
	assert.Len(t, w.calls, 2)
}

func TestColumnToggle(t *testing.T) {
	r, store, w := setup(t)

	rec := get(r, "/settings/web/column/unset?page=dashboard&column=clusters")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, store.Snapshot().ColumnDisplay[config.PageDashboard][config.ColumnCluster])
	require.Len(t, w.calls, 1)
	assert.Equal(t, "dashboard", w.calls[0].params.Get("page"))

	require.Equal(t, http.StatusOK, get(r, "/settings/web/column/set?page=jobs_list&column=job_user_props").Code)
	assert.True(t, store.Snapshot().ColumnDisplay[config.PageJobsList][ColumnUserProps])
}

func TestColumnValidation(t *testing.T) {
	r, _, w := setup(t)

	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/column/set?page=nowhere&column=clusters").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/column/set?page=dashboard").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(r, "/settings/web/column/set?page=dashboard&column=actions").Code)
	assert.Empty(t, w.calls)
}

func TestItemsPerPage(t *testing.T) {
	r, store, _ := setup(t)

	require.Equal(t, http.StatusOK, get(r, "/settings/web/nbr_items_per_page/set?nbr_items_per_page=100").Code)
	assert.Equal(t, 100, store.ItemsPerPage())

	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/nbr_items_per_page/set?nbr_items_per_page=many").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(r, "/settings/web/nbr_items_per_page/set?nbr_items_per_page=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/nbr_items_per_page/set").Code)
	assert.Equal(t, 100, store.ItemsPerPage())
}

func TestFormatsAndLanguage(t *testing.T) {
	r, store, _ := setup(t)

	require.Equal(t, http.StatusOK, get(r, "/settings/web/date_format/set?date_format="+url.QueryEscape("DD/MM/YYYY")).Code)
	require.Equal(t, http.StatusOK, get(r, "/settings/web/time_format/set?time_format="+url.QueryEscape("AM/PM")).Code)
	require.Equal(t, http.StatusOK, get(r, "/settings/web/language/set?language=fr").Code)

	f := store.Formatter()
	assert.Equal(t, "DD/MM/YYYY", f.DateFormat)
	assert.Equal(t, "AM/PM", f.TimeFormat)
	assert.Equal(t, "fr", f.Language)

	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/date_format/set?date_format=julian").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/settings/web/language/set?language=de").Code)
}

func TestBackendFailureStillApplies(t *testing.T) {
	r, store, w := setup(t)
	w.err = errors.New("backend down")

	require.Equal(t, http.StatusOK, get(r, "/settings/web/dark_mode/set").Code)
	assert.True(t, store.DarkMode())
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore(config.Default())
	snap := store.Snapshot()
	snap.ColumnDisplay[config.PageDashboard][config.ColumnCluster] = false

	_, ok := store.Snapshot().ColumnDisplay[config.PageDashboard][config.ColumnCluster]
	assert.False(t, ok)
}

func TestForcedHidden(t *testing.T) {
	store := NewStore(config.Default())
	store.SetColumn(config.PageDashboard, config.ColumnActions, true)
	assert.False(t, store.Snapshot().ColumnDisplay[config.PageDashboard][config.ColumnActions])

	store.SetColumn(config.PageAPIList, config.ColumnActions, true)
	assert.True(t, store.Snapshot().ColumnDisplay[config.PageAPIList][config.ColumnActions])
}

func TestRendererFallsBackToDashboard(t *testing.T) {
	store := NewStore(config.Default())
	r := store.Renderer("unknown")
	assert.Equal(t, config.PageDashboard, r.Page)
	assert.Equal(t, "dashboard_table", r.TableID)
}

func TestPreferencesAreKeptPerSession(t *testing.T) {
	r, reg, _ := setupRegistry(t)

	require.Equal(t, http.StatusOK, getAs(r, "/settings/web/dark_mode/set", "alice").Code)
	require.Equal(t, http.StatusOK, getAs(r, "/settings/web/nbr_items_per_page/set?nbr_items_per_page=100", "alice").Code)

	alice := clockwork.SessionKey([]*http.Cookie{{Name: "session", Value: "alice"}})
	bob := clockwork.SessionKey([]*http.Cookie{{Name: "session", Value: "bob"}})
	assert.True(t, reg.DarkMode(alice))
	assert.Equal(t, 100, reg.ItemsPerPage(alice))
	assert.False(t, reg.DarkMode(bob))
	assert.Equal(t, config.Default().Paging.ItemsPerPage, reg.ItemsPerPage(bob))

	rec := getAs(r, "/settings/web", "bob")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results Settings `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Results.DarkMode)
}

func TestRegistryAppliesLocationToNewSessions(t *testing.T) {
	reg := NewRegistry(config.Default(), 0)
	loc := time.FixedZone("EST", -5*3600)
	reg.SetLocation(loc)
	assert.Equal(t, loc, reg.Formatter("someone").Location)
}
