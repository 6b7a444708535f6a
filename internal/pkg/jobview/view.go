package jobview

import (
	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/paging"
	"cwdash/internal/pkg/common/timefmt"
)

// View is everything one page of the dashboard shows.
type View struct {
	Table        Table          `json:"-"`
	Counters     Counters       `json:"counters"`
	Pagination   []PageControl  `json:"pagination"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	TotalPages   int            `json:"total_pages"`
	TotalItems   int            `json:"total_items"`    // jobs left after the display filter
	NbrTotalJobs int            `json:"nbr_total_jobs"` // as reported by the backend
	Jobs         clockwork.Jobs `json:"-"`              // the jobs of the current page
}

// Build derives the view of resp under filter. It does not modify resp.
// Counters cover every filtered job, the table only the requested page.
func Build(resp clockwork.JobsResponse, filter DisplayFilter, page int, r Renderer, maxStep int) View {
	size := filter.ItemsPerPage
	if size <= 0 {
		size = len(resp.Jobs)
	}
	if page < 1 {
		page = 1
	}

	filtered := ApplyFilter(resp.Jobs, filter)
	pageJobs := paging.Paginate(filtered, size, page)

	v := View{
		Counters:     Count(filtered),
		Pagination:   Pagination(page, size, len(filtered), maxStep),
		Page:         page,
		PageSize:     size,
		TotalPages:   paging.TotalPages(len(filtered), size),
		TotalItems:   len(filtered),
		NbrTotalJobs: resp.NbrTotalJobs,
		Jobs:         pageJobs,
	}
	r.Render(&v.Table, pageJobs)
	return v
}

// JobRow is the JSON shape of one job in API listings.
type JobRow struct {
	ClusterName string       `json:"cluster_name"`
	JobID       string       `json:"job_id"`
	Name        string       `json:"name"`
	JobState    string       `json:"job_state"`
	Username    string       `json:"username"`
	SubmitTime  timefmt.Time `json:"submit_time" swaggertype:"string"`
	StartTime   timefmt.Time `json:"start_time" swaggertype:"string"`
	EndTime     timefmt.Time `json:"end_time" swaggertype:"string"`
}

// Rows converts jobs to their JSON rows.
func Rows(jobs clockwork.Jobs) []JobRow {
	out := make([]JobRow, 0, len(jobs))
	for _, j := range jobs {
		s := j.Slurm
		out = append(out, JobRow{
			ClusterName: s.ClusterName,
			JobID:       s.JobID,
			Name:        s.Name,
			JobState:    s.JobState,
			Username:    j.Username(),
			SubmitTime:  timefmt.FromUnix(s.SubmitTime),
			StartTime:   timefmt.FromUnix(s.StartTime),
			EndTime:     timefmt.FromUnix(s.EndTime),
		})
	}
	return out
}
