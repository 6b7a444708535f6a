package clockwork

import (
	"strings"

	"github.com/go-openapi/strfmt"
)

// Jobs is a slice of Job records.
type Jobs []Job

// Job is one record of /jobs/list and /jobs/search. The slurm part mirrors
// what the scheduler reports, the cw part is Clockwork's own bookkeeping.
type Job struct {
	Slurm SlurmRecord `json:"slurm"`
	CW    CWRecord    `json:"cw"`
}

type SlurmRecord struct {
	ClusterName string `json:"cluster_name"`
	JobID       string `json:"job_id"`
	Name        string `json:"name"`
	JobState    string `json:"job_state"` // 大写状态名, 如 RUNNING, OUT_OF_MEMORY
	SubmitTime  *int64 `json:"submit_time"`
	StartTime   *int64 `json:"start_time"`
	EndTime     *int64 `json:"end_time"`
	Username    string `json:"username"`
}

type CWRecord struct {
	MilaEmailUsername *strfmt.Email `json:"mila_email_username"`
}

// Email returns the cw email of the job owner. ok is false when the backend
// sent none or a malformed one.
func (j Job) Email() (strfmt.Email, bool) {
	if j.CW.MilaEmailUsername == nil {
		return "", false
	}
	email := *j.CW.MilaEmailUsername
	if !strfmt.IsEmail(email.String()) {
		return "", false
	}
	return email, true
}

// Username returns the part of the cw email before "@", falling back to the
// slurm username when no valid email is known.
func (j Job) Username() string {
	if email, ok := j.Email(); ok {
		s := email.String()
		return s[:strings.LastIndex(s, "@")]
	}
	return j.Slurm.Username
}

// JobsResponse is the body returned by the GET job endpoints.
type JobsResponse struct {
	Jobs         Jobs `json:"jobs"`
	NbrTotalJobs int  `json:"nbr_total_jobs"`
}

// FlatJob is one element of the POST /jobs/api/list response.
type FlatJob struct {
	ClusterName          string `json:"cluster_name"`
	BestGuessForUsername string `json:"best_guess_for_username"`
	JobID                string `json:"job_id"`
	Name                 string `json:"name"`
	JobState             string `json:"job_state"`
}

// Job lifts a flat record into the nested shape used everywhere else.
func (f FlatJob) Job() Job {
	return Job{Slurm: SlurmRecord{
		ClusterName: f.ClusterName,
		JobID:       f.JobID,
		Name:        f.Name,
		JobState:    f.JobState,
		Username:    f.BestGuessForUsername,
	}}
}

// APIQueryFilter is sent as {"query_filter": ...} to /jobs/api/list.
type APIQueryFilter struct {
	Username string `json:"username,omitempty"`
	Time     int    `json:"time,omitempty"`
}

// Folder is a node of the Joplin folder ancestry.
type Folder struct {
	Title     string   `json:"title"`
	JID       string   `json:"jid"`
	ParentJID string   `json:"parent_jid"`
	Status    string   `json:"status"` // open, closed
	NoteCount int      `json:"note_count"`
	Children  []Folder `json:"children"`
}

type NoteInfo struct {
	JID   string `json:"jid"`
	Title string `json:"title"`
}

type NoteContents struct {
	Title           string `json:"title"`
	JID             string `json:"jid"`
	ParentJID       string `json:"parent_jid"`
	Body            string `json:"body"`
	SourceURL       string `json:"source_url"`
	Altitude        string `json:"altitude"`
	Latitude        string `json:"latitude"`
	Longitude       string `json:"longitude"`
	CreatedTime     int64  `json:"created_time"`
	UpdatedTime     int64  `json:"updated_time"`
	UserCreatedTime int64  `json:"user_created_time"`
	UserUpdatedTime int64  `json:"user_updated_time"`
	IsConflict      int    `json:"is_conflict"`
	IsTodo          int    `json:"is_todo"`
}

// Hierarchy is the body of /joplin_live/mono/ancestors_folders_of_single_folder/<jid>.
type Hierarchy struct {
	FoldersAncestry []Folder      `json:"folders_ancestry"`
	NotesLastLevel  []NoteInfo    `json:"notes_last_level"`
	NoteJID         string        `json:"note_jid"`
	FolderJID       string        `json:"folder_jid"`
	NoteContents    *NoteContents `json:"note_contents"`
}
