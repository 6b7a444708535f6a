package clockwork

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return New(srv.Client(), base, 0, nil)
}

func TestListJobs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/list", r.URL.Path)
		assert.Equal(t, "True", r.URL.Query().Get("want_json"))
		assert.Equal(t, "alice", r.URL.Query().Get("username"))
		_, _ = io.WriteString(w, `{"jobs":[{"slurm":{"cluster_name":"mila","job_id":"1","job_state":"RUNNING","start_time":1700000000,"end_time":null},"cw":{"mila_email_username":"alice@mila.quebec"}}],"nbr_total_jobs":1}`)
	})

	resp, err := c.ListJobs(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, 1, resp.NbrTotalJobs)
	job := resp.Jobs[0]
	assert.Equal(t, "mila", job.Slurm.ClusterName)
	require.NotNil(t, job.Slurm.StartTime)
	assert.EqualValues(t, 1700000000, *job.Slurm.StartTime)
	assert.Nil(t, job.Slurm.EndTime)
	assert.Equal(t, "alice", job.Username())
}

func TestListJobsAllOmitsUsername(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["username"]
		assert.False(t, ok)
		_, _ = io.WriteString(w, `{"jobs":[],"nbr_total_jobs":0}`)
	})
	_, err := c.ListJobs(context.Background(), "all")
	require.NoError(t, err)
}

func TestSearchJobs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/search", r.URL.Path)
		assert.Equal(t, "True", r.URL.Query().Get("want_count"))
		_, _ = io.WriteString(w, `{"jobs":[],"nbr_total_jobs":12}`)
	})
	resp, err := c.SearchJobs(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 12, resp.NbrTotalJobs)
}

func TestFetchJobsAPIVariant(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs/api/list", r.URL.Path)
		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bob", body["query_filter"]["username"])
		assert.EqualValues(t, 3600, body["query_filter"]["time"])
		_, _ = io.WriteString(w, `[{"cluster_name":"cedar","best_guess_for_username":"bob","job_id":"7","name":"train","job_state":"PENDING"}]`)
	})

	resp, err := c.FetchJobs(context.Background(), EndpointAPI, "bob", 3600)
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "cedar", resp.Jobs[0].Slurm.ClusterName)
	assert.Equal(t, "bob", resp.Jobs[0].Username())
	assert.Equal(t, 1, resp.NbrTotalJobs)
}

func TestAPIListJobsWithoutFilterSendsNoBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		_, _ = io.WriteString(w, `[]`)
	})
	resp, err := c.FetchJobs(context.Background(), EndpointAPI, "all", 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Jobs)
}

func TestNon200IsUnexpectedStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.ListJobs(context.Background(), "all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "something went wrong on api server")
}

func TestMalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"jobs": [`)
	})
	_, err := c.ListJobs(context.Background(), "all")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestCookiesForwarded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("session")
		require.NoError(t, err)
		assert.Equal(t, "from-browser", ck.Value)
		_, _ = io.WriteString(w, `{}`)
	})
	c.SetSessionCookie("session", "configured")
	ctx := WithCookies(context.Background(), []*http.Cookie{{Name: "session", Value: "from-browser"}})
	_, err := c.ListJobs(ctx, "all")
	require.NoError(t, err)
}

func TestConfiguredSessionCookie(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("session")
		require.NoError(t, err)
		assert.Equal(t, "configured", ck.Value)
	})
	c.SetSessionCookie("session", "configured")
	require.NoError(t, c.WriteSetting(context.Background(), "dark_mode/set", nil))
}

func TestWriteSetting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settings/web/column/unset", r.URL.Path)
		assert.Equal(t, "dashboard", r.URL.Query().Get("page"))
		assert.Equal(t, "links", r.URL.Query().Get("column"))
		_, _ = io.WriteString(w, "ignored body")
	})
	err := c.WriteSetting(context.Background(), "column/unset", url.Values{"page": {"dashboard"}, "column": {"links"}})
	require.NoError(t, err)
}

func TestNotesEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/joplin_live/mono/ancestors_folders_of_single_folder/abc":
			_, _ = io.WriteString(w, `{"folders_ancestry":[{"title":"Work","jid":"abc","status":"open","children":[]}],"notes_last_level":[{"jid":"n1","title":"todo"}],"folder_jid":"abc","note_contents":{"title":"todo","body":"# hi"}}`)
		case "/joplin_live/rest/convert_markdown2html_note":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "# hi", body["body_as_markdown"])
			_, _ = io.WriteString(w, `{"body_as_html":"<h1>hi</h1>"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	h, err := c.FolderAncestors(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, h.FoldersAncestry, 1)
	assert.Equal(t, "Work", h.FoldersAncestry[0].Title)
	require.NotNil(t, h.NoteContents)

	html, err := c.ConvertMarkdown(context.Background(), h.NoteContents.Body)
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", html)
}

func TestTimeoutApplied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	base, _ := url.Parse(srv.URL)
	c := New(srv.Client(), base, 50*time.Millisecond, nil)

	_, err := c.ListJobs(context.Background(), "all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestParseEndpoint(t *testing.T) {
	ep, err := ParseEndpoint("SEARCH")
	require.NoError(t, err)
	assert.Equal(t, EndpointSearch, ep)
	_, err = ParseEndpoint("nope")
	assert.Error(t, err)
}

func TestUsernameFallbacks(t *testing.T) {
	weird := strfmt.Email("not-an-email")
	j := Job{Slurm: SlurmRecord{Username: "slurmuser"}, CW: CWRecord{MilaEmailUsername: &weird}}
	_, ok := j.Email()
	assert.False(t, ok)
	assert.Equal(t, "slurmuser", j.Username())

	empty := strfmt.Email("")
	j.CW.MilaEmailUsername = &empty
	assert.Equal(t, "slurmuser", j.Username())

	j.CW.MilaEmailUsername = nil
	assert.Equal(t, "slurmuser", j.Username())

	good := strfmt.Email("first.last@mila.quebec")
	j.CW.MilaEmailUsername = &good
	email, ok := j.Email()
	require.True(t, ok)
	assert.Equal(t, good, email)
	assert.Equal(t, "first.last", j.Username())
}

func TestSessionKey(t *testing.T) {
	alice := []*http.Cookie{{Name: "session", Value: "alice"}, {Name: "lang", Value: "fr"}}
	aliceReordered := []*http.Cookie{{Name: "lang", Value: "fr"}, {Name: "session", Value: "alice"}}
	bob := []*http.Cookie{{Name: "session", Value: "bob"}, {Name: "lang", Value: "fr"}}

	assert.Equal(t, SessionKey(alice), SessionKey(aliceReordered))
	assert.NotEqual(t, SessionKey(alice), SessionKey(bob))
	assert.NotContains(t, SessionKey(alice), "alice")
	assert.Equal(t, AnonymousSession, SessionKey(nil))
}

func TestClientSessionKeyFallsBackToConfiguredCookie(t *testing.T) {
	base, err := url.Parse("http://clockwork.invalid")
	require.NoError(t, err)
	c := New(nil, base, 0, nil)
	assert.Equal(t, AnonymousSession, c.SessionKey(context.Background()))

	c.SetSessionCookie("session", "configured")
	configured := c.SessionKey(context.Background())
	assert.Equal(t, SessionKey([]*http.Cookie{{Name: "session", Value: "configured"}}), configured)

	browser := WithCookies(context.Background(), []*http.Cookie{{Name: "session", Value: "alice"}})
	assert.NotEqual(t, configured, c.SessionKey(browser))
	assert.Len(t, CookiesFromContext(browser), 1)
}
