package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"cwdash/internal/pkg/common/slurm"
	"cwdash/internal/pkg/common/timefmt"
)

// Page names used for layouts and column visibility.
const (
	PageDashboard = "dashboard"
	PageJobsList  = "jobs_list"
	PageAPIList   = "api_list"
)

// Column identifiers, in the order a full table shows them.
const (
	ColumnCluster    = "clusters"
	ColumnUser       = "user"
	ColumnJobID      = "job_id"
	ColumnJobName    = "job_name"
	ColumnJobState   = "job_state"
	ColumnSubmitTime = "submit_time"
	ColumnStartTime  = "start_time"
	ColumnEndTime    = "end_time"
	ColumnLinks      = "links"
	ColumnActions    = "actions"
)

type File struct {
	Clusters       []string          `yaml:"clusters" json:"clusters"`
	DisplayFilter  DisplayFilter     `yaml:"display_filter" json:"display_filter"`
	Paging         Paging            `yaml:"paging" json:"paging"`
	Layouts        map[string]Layout `yaml:"layouts" json:"layouts"`
	JobStatsPortal map[string]string `yaml:"jobstats_portal" json:"jobstats_portal"`
	Preferences    Preferences       `yaml:"preferences" json:"preferences"`
}

// DisplayFilter lists what is shown by default. Anything not listed is hidden.
type DisplayFilter struct {
	Clusters  []string `yaml:"clusters" json:"clusters"`
	JobStates []string `yaml:"job_states" json:"job_states"`
}

type Paging struct {
	ItemsPerPage        int   `yaml:"items_per_page" json:"items_per_page"`
	ItemsPerPageOptions []int `yaml:"items_per_page_options" json:"items_per_page_options"`
	MaxSteppedPage      int   `yaml:"max_stepped_page" json:"max_stepped_page"`
}

type Layout struct {
	TableID      string   `yaml:"table_id" json:"table_id"`
	Columns      []string `yaml:"columns" json:"columns"`
	NameTruncate int      `yaml:"name_truncate" json:"name_truncate"`
}

type Preferences struct {
	DarkMode      bool                       `yaml:"dark_mode" json:"dark_mode"`
	DateFormat    string                     `yaml:"date_format" json:"date_format"`
	TimeFormat    string                     `yaml:"time_format" json:"time_format"`
	Language      string                     `yaml:"language" json:"language"`
	ColumnDisplay map[string]map[string]bool `yaml:"column_display" json:"column_display"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Clusters: []string{"mila", "beluga", "cedar", "graham", "narval"},
		DisplayFilter: DisplayFilter{
			Clusters:  []string{"mila", "beluga", "cedar", "graham", "narval"},
			JobStates: slurm.States(),
		},
		Paging: Paging{
			ItemsPerPage:        40,
			ItemsPerPageOptions: []int{25, 40, 50, 100},
			MaxSteppedPage:      10,
		},
		Layouts: map[string]Layout{
			PageDashboard: {
				TableID: "dashboard_table",
				Columns: []string{
					ColumnCluster, ColumnJobID, ColumnJobName, ColumnJobState,
					ColumnSubmitTime, ColumnStartTime, ColumnEndTime, ColumnLinks, ColumnActions,
				},
				NameTruncate: 20,
			},
			PageJobsList: {
				TableID: "table_98429387",
				Columns: []string{
					ColumnCluster, ColumnUser, ColumnJobID, ColumnJobName, ColumnJobState,
					ColumnSubmitTime, ColumnStartTime, ColumnEndTime, ColumnLinks, ColumnActions,
				},
				NameTruncate: 32,
			},
			PageAPIList: {
				TableID:      "table_98429387",
				Columns:      []string{ColumnCluster, ColumnUser, ColumnJobID, ColumnJobName, ColumnJobState},
				NameTruncate: 32,
			},
		},
		JobStatsPortal: map[string]string{
			"narval": "https://portail.narval.calculquebec.ca/secure/jobstats/{username}/{job_id}",
			"beluga": "https://portail.beluga.calculquebec.ca/secure/jobstats/{username}/{job_id}",
		},
		Preferences: Preferences{
			DateFormat: timefmt.DateWords,
			TimeFormat: timefmt.Time24h,
			Language:   "en",
			ColumnDisplay: map[string]map[string]bool{
				PageDashboard: {ColumnActions: false},
				PageJobsList:  {ColumnActions: false, "job_user_props": false},
			},
		},
	}
}

// Load reads path and overlays it on Default(). Keys absent from the file keep
// their default values.
func Load(path string) (File, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read dashboard config %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML content over Default() and validates the result.
func Parse(b []byte) (File, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("parse dashboard config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return File{}, err
	}
	return cfg, nil
}

func (f File) Validate() error {
	if f.Paging.ItemsPerPage <= 0 {
		return fmt.Errorf("paging.items_per_page must be positive, got %d", f.Paging.ItemsPerPage)
	}
	if f.Paging.MaxSteppedPage < 0 {
		return fmt.Errorf("paging.max_stepped_page must not be negative, got %d", f.Paging.MaxSteppedPage)
	}
	for name, l := range f.Layouts {
		if len(l.Columns) == 0 {
			return fmt.Errorf("layout %q has no columns", name)
		}
		if l.NameTruncate < 0 {
			return fmt.Errorf("layout %q: name_truncate must not be negative", name)
		}
		for _, c := range l.Columns {
			if !slices.Contains(knownColumns, c) {
				return fmt.Errorf("layout %q: unknown column %q", name, c)
			}
		}
	}
	if p := f.Preferences.DateFormat; p != "" && !slices.Contains(timefmt.DateFormats(), p) {
		return fmt.Errorf("preferences.date_format %q is not one of %v", p, timefmt.DateFormats())
	}
	if p := f.Preferences.TimeFormat; p != "" && !slices.Contains(timefmt.TimeFormats(), p) {
		return fmt.Errorf("preferences.time_format %q is not one of %v", p, timefmt.TimeFormats())
	}
	return nil
}

var knownColumns = []string{
	ColumnCluster, ColumnUser, ColumnJobID, ColumnJobName, ColumnJobState,
	ColumnSubmitTime, ColumnStartTime, ColumnEndTime, ColumnLinks, ColumnActions,
}

// KnownColumns lists every column identifier a layout may use.
func KnownColumns() []string {
	return slices.Clone(knownColumns)
}
