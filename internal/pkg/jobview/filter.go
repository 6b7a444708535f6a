package jobview

import (
	"maps"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/slurm"
	"cwdash/internal/pkg/config"
)

// QueryFilter decides what the backend returns.
type QueryFilter struct {
	Username   string `json:"username" form:"username"`       // "all" or one user
	TimeWindow int    `json:"time_window" form:"time_window"` // seconds to look back
}

// DisplayFilter decides what is shown from already fetched jobs.
// A cluster or state that is not a key of its map is hidden.
type DisplayFilter struct {
	ClusterName  map[string]bool `json:"cluster_name"`
	JobState     map[string]bool `json:"job_state"`
	ItemsPerPage int             `json:"items_per_page"`
}

// NewDisplayFilter enables every cluster and state listed in cfg.
func NewDisplayFilter(cfg config.DisplayFilter, itemsPerPage int) DisplayFilter {
	f := DisplayFilter{
		ClusterName:  make(map[string]bool, len(cfg.Clusters)),
		JobState:     make(map[string]bool, len(cfg.JobStates)),
		ItemsPerPage: itemsPerPage,
	}
	for _, c := range cfg.Clusters {
		f.ClusterName[c] = true
	}
	for _, s := range cfg.JobStates {
		f.JobState[s] = true
	}
	return f
}

// Clone returns a deep copy so callers can toggle entries without sharing maps.
func (f DisplayFilter) Clone() DisplayFilter {
	return DisplayFilter{
		ClusterName:  maps.Clone(f.ClusterName),
		JobState:     maps.Clone(f.JobState),
		ItemsPerPage: f.ItemsPerPage,
	}
}

// Shows reports whether both the job's cluster and its state are enabled.
func (f DisplayFilter) Shows(job clockwork.Job) bool {
	return f.ClusterName[job.Slurm.ClusterName] && f.JobState[job.Slurm.JobState]
}

// ApplyFilter keeps the jobs f shows, in their original order.
func ApplyFilter(jobs clockwork.Jobs, f DisplayFilter) clockwork.Jobs {
	out := make(clockwork.Jobs, 0, len(jobs))
	for _, j := range jobs {
		if f.Shows(j) {
			out = append(out, j)
		}
	}
	return out
}

// Counters tallies jobs per status bucket.
type Counters struct {
	Completed int `json:"completed"`
	Running   int `json:"running"`
	Pending   int `json:"pending"`
	Stalled   int `json:"stalled"`
}

// Count buckets every job by state. States outside the buckets are ignored.
func Count(jobs clockwork.Jobs) Counters {
	var c Counters
	for _, j := range jobs {
		switch slurm.Classify(j.Slurm.JobState) {
		case slurm.BucketCompleted:
			c.Completed++
		case slurm.BucketRunning:
			c.Running++
		case slurm.BucketPending:
			c.Pending++
		case slurm.BucketStalled:
			c.Stalled++
		}
	}
	return c
}
