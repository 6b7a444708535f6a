package jobview

import (
	"html/template"
	"io"
	"net/url"
	"strings"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/slurm"
	"cwdash/internal/pkg/common/timefmt"
	"cwdash/internal/pkg/config"
)

// Column is one header cell.
type Column struct {
	ID       string
	Title    string
	Sortable bool
}

var columns = map[string]Column{
	config.ColumnCluster:    {ID: config.ColumnCluster, Title: "Cluster", Sortable: true},
	config.ColumnUser:       {ID: config.ColumnUser, Title: "User", Sortable: true},
	config.ColumnJobID:      {ID: config.ColumnJobID, Title: "Job ID", Sortable: true},
	config.ColumnJobName:    {ID: config.ColumnJobName, Title: "Job name", Sortable: true},
	config.ColumnJobState:   {ID: config.ColumnJobState, Title: "Job state", Sortable: true},
	config.ColumnSubmitTime: {ID: config.ColumnSubmitTime, Title: "Submit time", Sortable: true},
	config.ColumnStartTime:  {ID: config.ColumnStartTime, Title: "Start time", Sortable: true},
	config.ColumnEndTime:    {ID: config.ColumnEndTime, Title: "End time", Sortable: true},
	config.ColumnLinks:      {ID: config.ColumnLinks, Title: "Links"},
	config.ColumnActions:    {ID: config.ColumnActions, Title: "Actions"},
}

// Link is an anchor rendered inside a cell.
type Link struct {
	Href  string
	Title string
	Class string
}

// Cell is one rendered table cell.
type Cell struct {
	Column string
	Text   string
	Href   string
	Class  string
	Links  []Link
}

// Row keeps the job's original upper-case state next to its display cells.
type Row struct {
	State string
	Cells []Cell
}

// Table is the in-memory form of the rendered job table.
type Table struct {
	ID     string
	Header []Column
	Rows   []Row
}

// Vacate empties the table. Calling it on an empty table is a no-op.
func (t *Table) Vacate() {
	t.Header = nil
	t.Rows = nil
}

// Empty reports whether the table has neither header nor rows.
func (t *Table) Empty() bool {
	return len(t.Header) == 0 && len(t.Rows) == 0
}

// LinkBuilder returns the links shown in the "links" column for a job.
type LinkBuilder func(job clockwork.Job) []Link

// PortalLinks builds the job-statistics portal link for clusters listed in
// templates. {username} and {job_id} are substituted.
func PortalLinks(templates map[string]string) LinkBuilder {
	return func(job clockwork.Job) []Link {
		tpl, ok := templates[job.Slurm.ClusterName]
		if !ok || tpl == "" {
			return nil
		}
		href := strings.NewReplacer(
			"{username}", url.PathEscape(job.Username()),
			"{job_id}", url.PathEscape(job.Slurm.JobID),
		).Replace(tpl)
		return []Link{{Href: href, Title: "Job statistics", Class: "jobstats"}}
	}
}

// Renderer turns jobs into table rows for one page layout.
type Renderer struct {
	Page         string
	TableID      string
	Columns      []string
	NameTruncate int
	// Visibility maps page -> column -> shown. Missing entries are shown.
	Visibility map[string]map[string]bool
	Format     timefmt.Formatter
	Links      LinkBuilder
}

// NewRenderer builds a renderer from a configured layout.
func NewRenderer(page string, l config.Layout, visibility map[string]map[string]bool, f timefmt.Formatter, links LinkBuilder) Renderer {
	return Renderer{
		Page:         page,
		TableID:      l.TableID,
		Columns:      l.Columns,
		NameTruncate: l.NameTruncate,
		Visibility:   visibility,
		Format:       f,
		Links:        links,
	}
}

func (r Renderer) visible(column string) bool {
	shown, ok := r.Visibility[r.Page][column]
	return !ok || shown
}

// VisibleColumns lists the layout's columns that pass the visibility lookup.
func (r Renderer) VisibleColumns() []Column {
	out := make([]Column, 0, len(r.Columns))
	for _, id := range r.Columns {
		c, ok := columns[id]
		if !ok || !r.visible(id) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Render replaces the content of t with a header and one row per job.
func (r Renderer) Render(t *Table, jobs clockwork.Jobs) {
	t.Vacate()
	t.ID = r.TableID
	t.Header = r.VisibleColumns()
	t.Rows = make([]Row, 0, len(jobs))
	for _, j := range jobs {
		row := Row{State: j.Slurm.JobState, Cells: make([]Cell, 0, len(t.Header))}
		for _, c := range t.Header {
			row.Cells = append(row.Cells, r.cell(c.ID, j))
		}
		t.Rows = append(t.Rows, row)
	}
}

func (r Renderer) cell(column string, j clockwork.Job) Cell {
	s := j.Slurm
	c := Cell{Column: column}
	switch column {
	case config.ColumnCluster:
		c.Text = s.ClusterName
	case config.ColumnUser:
		c.Text = j.Username()
	case config.ColumnJobID:
		c.Text = s.JobID
		c.Href = "/jobs/one?job_id=" + url.QueryEscape(s.JobID)
	case config.ColumnJobName:
		c.Text = Truncate(s.Name, r.NameTruncate)
	case config.ColumnJobState:
		c.Text = slurm.Display(s.JobState)
		c.Class = "status " + slurm.CSSClass(s.JobState)
	case config.ColumnSubmitTime:
		c.Text = r.Format.FormatPtr(s.SubmitTime)
	case config.ColumnStartTime:
		c.Text = r.Format.FormatPtr(s.StartTime)
	case config.ColumnEndTime:
		c.Text = r.Format.FormatPtr(s.EndTime)
	case config.ColumnLinks:
		c.Class = "links"
		if r.Links != nil {
			c.Links = r.Links(j)
		}
	case config.ColumnActions:
		c.Class = "actions"
		c.Links = []Link{{Href: "/jobs/one?job_id=" + url.QueryEscape(s.JobID), Title: "Cancel job", Class: "stop"}}
	}
	return c
}

// Truncate cuts s to at most n runes. n <= 0 disables truncation.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}

var tableTemplate = template.Must(template.New("table").Parse(`<table id="{{.ID}}" class="table">
{{- if .Header}}
<thead><tr>{{range .Header}}<th data-column="{{.ID}}"{{if not .Sortable}} data-sortable="false"{{end}}>{{.Title}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr data-state="{{.State}}">{{range .Cells}}<td data-column="{{.Column}}"{{if .Class}} class="{{.Class}}"{{end}}>
{{- if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else if .Links}}{{range .Links}}<a href="{{.Href}}" class="{{.Class}}" title="{{.Title}}">{{.Title}}</a>{{end}}{{else}}{{.Text}}{{end -}}
</td>{{end}}</tr>
{{- end}}
</tbody>
{{- end}}
</table>`))

// WriteHTML writes t as an HTML table. An empty table renders as an empty
// <table> element.
func (t *Table) WriteHTML(w io.Writer) error {
	return tableTemplate.Execute(w, t)
}

// Populate fills t with jobs using r.
func (t *Table) Populate(r Renderer, jobs clockwork.Jobs) {
	r.Render(t, jobs)
}
