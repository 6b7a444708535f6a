package jobview

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/timefmt"
	"cwdash/internal/pkg/config"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func job(cluster, id, state string) clockwork.Job {
	return clockwork.Job{Slurm: clockwork.SlurmRecord{
		ClusterName: cluster,
		JobID:       id,
		Name:        "job-" + id,
		JobState:    state,
		Username:    "slurm_" + id,
	}}
}

func ptr(v int64) *int64 { return &v }

func testRenderer(page string) Renderer {
	cfg := config.Default()
	now := time.Date(2021, 7, 6, 22, 19, 46, 0, time.UTC)
	f := timefmt.Formatter{
		DateFormat: timefmt.DateYMD,
		TimeFormat: timefmt.Time24h,
		Location:   time.UTC,
		Now:        func() time.Time { return now },
	}
	return NewRenderer(page, cfg.Layouts[page], cfg.Preferences.ColumnDisplay, f, PortalLinks(cfg.JobStatsPortal))
}

func parse(t *testing.T, tbl *Table) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tbl.WriteHTML(&buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestApplyFilterMissingKeysHide(t *testing.T) {
	jobs := clockwork.Jobs{
		job("mila", "1", "RUNNING"),
		job("cedar", "2", "RUNNING"),
		job("mila", "3", "PENDING"),
		job("graham", "4", "RUNNING"),
	}
	f := DisplayFilter{
		ClusterName: map[string]bool{"mila": true, "cedar": false},
		JobState:    map[string]bool{"RUNNING": true},
	}

	got := ApplyFilter(jobs, f)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Slurm.JobID)
	assert.Len(t, jobs, 4)
}

func TestApplyFilterKeepsOrder(t *testing.T) {
	jobs := clockwork.Jobs{job("mila", "3", "RUNNING"), job("mila", "1", "RUNNING"), job("mila", "2", "RUNNING")}
	f := NewDisplayFilter(config.DisplayFilter{Clusters: []string{"mila"}, JobStates: []string{"RUNNING"}}, 40)

	got := ApplyFilter(jobs, f)
	assert.Equal(t, []string{"3", "1", "2"}, []string{got[0].Slurm.JobID, got[1].Slurm.JobID, got[2].Slurm.JobID})
}

func TestDisplayFilterClone(t *testing.T) {
	f := NewDisplayFilter(config.DisplayFilter{Clusters: []string{"mila"}, JobStates: []string{"RUNNING"}}, 40)
	c := f.Clone()
	c.ClusterName["mila"] = false
	assert.True(t, f.ClusterName["mila"])
}

func TestCount(t *testing.T) {
	jobs := clockwork.Jobs{
		job("mila", "1", "RUNNING"),
		job("mila", "2", "COMPLETED"),
		job("mila", "3", "PENDING"),
		job("mila", "4", "FAILED"),
		job("mila", "5", "COMPLETING"),
	}
	assert.Equal(t, Counters{Completed: 1, Running: 2, Pending: 1, Stalled: 1}, Count(jobs))
}

func TestCountIgnoresUnknownStates(t *testing.T) {
	assert.Equal(t, Counters{}, Count(clockwork.Jobs{job("mila", "1", "SUSPENDED")}))
}

func TestVacateIdempotent(t *testing.T) {
	var tbl Table
	testRenderer(config.PageDashboard).Render(&tbl, clockwork.Jobs{job("mila", "1", "RUNNING")})
	require.False(t, tbl.Empty())

	tbl.Vacate()
	assert.True(t, tbl.Empty())
	tbl.Vacate()
	assert.True(t, tbl.Empty())

	doc := parse(t, &tbl)
	assert.Equal(t, 0, doc.Find("tr").Length())
}

func TestRenderDashboardRow(t *testing.T) {
	j := job("narval", "42", "OUT_OF_MEMORY")
	j.Slurm.Name = "a-very-long-job-name-that-overflows"
	j.Slurm.SubmitTime = ptr(1625609986)
	email := strfmt.Email("someone@mila.quebec")
	j.CW.MilaEmailUsername = &email

	var tbl Table
	tbl.Populate(testRenderer(config.PageDashboard), clockwork.Jobs{j})
	doc := parse(t, &tbl)

	assert.Equal(t, "dashboard_table", doc.Find("table").AttrOr("id", ""))
	// actions is hidden on the dashboard by default
	assert.Equal(t, 0, doc.Find(`th[data-column="actions"]`).Length())
	assert.Equal(t, 0, doc.Find(`th[data-column="user"]`).Length())

	row := doc.Find("tbody tr")
	require.Equal(t, 1, row.Length())
	assert.Equal(t, "OUT_OF_MEMORY", row.AttrOr("data-state", ""))

	assert.Equal(t, "/jobs/one?job_id=42", row.Find(`td[data-column="job_id"] a`).AttrOr("href", ""))
	assert.Equal(t, "a-very-long-job-name", row.Find(`td[data-column="job_name"]`).Text())

	state := row.Find(`td[data-column="job_state"]`)
	assert.Equal(t, "out of memory", state.Text())
	assert.True(t, state.HasClass("out_of_memory"))

	assert.Equal(t, "2021/07/06 22:19", row.Find(`td[data-column="submit_time"]`).Text())
	assert.Equal(t, "", row.Find(`td[data-column="end_time"]`).Text())

	portal := row.Find(`td[data-column="links"] a`)
	require.Equal(t, 1, portal.Length())
	assert.Equal(t, "https://portail.narval.calculquebec.ca/secure/jobstats/someone/42", portal.AttrOr("href", ""))
}

func TestRenderJobsListShowsUser(t *testing.T) {
	var tbl Table
	testRenderer(config.PageJobsList).Render(&tbl, clockwork.Jobs{job("mila", "7", "RUNNING")})
	doc := parse(t, &tbl)

	assert.Equal(t, "slurm_7", doc.Find(`td[data-column="user"]`).Text())
	assert.Equal(t, 0, doc.Find(`td[data-column="links"] a`).Length())
}

func TestColumnVisibilityDefaultShow(t *testing.T) {
	r := testRenderer(config.PageDashboard)
	r.Visibility = map[string]map[string]bool{config.PageDashboard: {config.ColumnCluster: false}}

	ids := make([]string, 0)
	for _, c := range r.VisibleColumns() {
		ids = append(ids, c.ID)
	}
	assert.NotContains(t, ids, config.ColumnCluster)
	assert.Contains(t, ids, config.ColumnActions)
	assert.Contains(t, ids, config.ColumnJobID)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "été", Truncate("été chaud", 3))
	assert.Equal(t, "short", Truncate("short", 20))
	assert.Equal(t, "untouched", Truncate("untouched", 0))
}

func TestPaginationControls(t *testing.T) {
	assert.Nil(t, Pagination(1, 40, 40, 10))

	controls := Pagination(1, 3, 7, 10)
	require.Len(t, controls, 5)
	assert.Equal(t, ControlPrev, controls[0].Kind)
	assert.True(t, controls[0].Disabled)
	assert.True(t, controls[1].Current)
	assert.Equal(t, 2, controls[4].Page)
	assert.False(t, controls[4].Disabled)

	last := Pagination(3, 3, 7, 10)
	assert.True(t, last[len(last)-1].Disabled)
	assert.Equal(t, 2, last[0].Page)
}

func TestPaginationStepCap(t *testing.T) {
	controls := Pagination(10, 1, 20, 10)
	assert.Equal(t, 10, controls[len(controls)-1].Page)
}

func TestWritePaginationHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePaginationHTML(&buf, Pagination(2, 3, 7, 10)))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)

	assert.Equal(t, 5, doc.Find("li").Length())
	assert.Equal(t, "2", strings.TrimSpace(doc.Find("li.current").Text()))
	assert.Equal(t, "1", doc.Find("li.prev a").AttrOr("data-page", ""))
	assert.Equal(t, "3", doc.Find("li.next a").AttrOr("data-page", ""))

	buf.Reset()
	require.NoError(t, WritePaginationHTML(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestBuildEndToEnd(t *testing.T) {
	resp := clockwork.JobsResponse{
		Jobs: clockwork.Jobs{
			job("mila", "1", "RUNNING"),
			job("cedar", "2", "RUNNING"),
		},
		NbrTotalJobs: 2,
	}
	f := DisplayFilter{
		ClusterName:  map[string]bool{"mila": true, "cedar": false},
		JobState:     map[string]bool{"RUNNING": true},
		ItemsPerPage: 40,
	}

	v := Build(resp, f, 1, testRenderer(config.PageDashboard), 10)
	assert.Equal(t, Counters{Running: 1}, v.Counters)
	assert.Equal(t, 1, v.TotalItems)
	assert.Equal(t, 2, v.NbrTotalJobs)
	assert.Empty(t, v.Pagination)

	doc := parse(t, &v.Table)
	rows := doc.Find("tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "mila", rows.Find(`td[data-column="clusters"]`).Text())
}

func TestBuildPageOutOfRange(t *testing.T) {
	resp := clockwork.JobsResponse{Jobs: clockwork.Jobs{job("mila", "1", "RUNNING")}}
	f := DisplayFilter{ClusterName: map[string]bool{"mila": true}, JobState: map[string]bool{"RUNNING": true}, ItemsPerPage: 40}

	v := Build(resp, f, 5, testRenderer(config.PageDashboard), 10)
	assert.Empty(t, v.Jobs)
	assert.Equal(t, Counters{Running: 1}, v.Counters)
	assert.Empty(t, v.Table.Rows)
}

func TestRows(t *testing.T) {
	j := job("mila", "1", "RUNNING")
	j.Slurm.StartTime = ptr(1625609986)
	rows := Rows(clockwork.Jobs{j})
	require.Len(t, rows, 1)
	assert.Equal(t, "slurm_1", rows[0].Username)
	assert.False(t, time.Time(rows[0].StartTime).IsZero())
	assert.True(t, time.Time(rows[0].EndTime).IsZero())
}
