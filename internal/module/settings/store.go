package settings

import (
	"maps"
	"slices"
	"sync"
	"time"

	"cwdash/internal/pkg/common/timefmt"
	"cwdash/internal/pkg/config"
	"cwdash/internal/pkg/jobview"
	"cwdash/internal/pkg/session"
)

// ColumnUserProps toggles the user-properties pane of the jobs list. It is not
// a table column but shares the visibility map.
const ColumnUserProps = "job_user_props"

// Preferences 用户界面偏好设置.
type Preferences struct {
	DarkMode      bool                       `json:"dark_mode"`
	ItemsPerPage  int                        `json:"nbr_items_per_page"`
	DateFormat    string                     `json:"date_format"`
	TimeFormat    string                     `json:"time_format"`
	Language      string                     `json:"language"`
	ColumnDisplay map[string]map[string]bool `json:"column_display"`
}

func (p Preferences) clone() Preferences {
	out := p
	out.ColumnDisplay = cloneColumns(p.ColumnDisplay)
	return out
}

func cloneColumns(m map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(m))
	for page, cols := range m {
		out[page] = maps.Clone(cols)
	}
	return out
}

// Store keeps the preferences in memory. Readers get copies.
type Store struct {
	mu       sync.RWMutex
	cfg      config.File
	prefs    Preferences
	location *time.Location
}

func NewStore(cfg config.File) *Store {
	p := cfg.Preferences
	return &Store{
		cfg: cfg,
		prefs: Preferences{
			DarkMode:      p.DarkMode,
			ItemsPerPage:  cfg.Paging.ItemsPerPage,
			DateFormat:    p.DateFormat,
			TimeFormat:    p.TimeFormat,
			Language:      p.Language,
			ColumnDisplay: cloneColumns(p.ColumnDisplay),
		},
	}
}

// SetLocation sets the zone numeric dates are shown in. nil means local time.
func (s *Store) SetLocation(loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = loc
}

func (s *Store) Snapshot() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.clone()
}

func (s *Store) SetDarkMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.DarkMode = on
}

// ForcedHidden reports whether column can never be shown on page.
func ForcedHidden(page, column string) bool {
	return column == config.ColumnActions && (page == config.PageDashboard || page == config.PageJobsList)
}

// SetColumn records whether column is shown on page. Columns that are forced
// hidden stay hidden.
func (s *Store) SetColumn(page, column string, shown bool) {
	if ForcedHidden(page, column) {
		shown = false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.ColumnDisplay == nil {
		s.prefs.ColumnDisplay = make(map[string]map[string]bool)
	}
	if s.prefs.ColumnDisplay[page] == nil {
		s.prefs.ColumnDisplay[page] = make(map[string]bool)
	}
	s.prefs.ColumnDisplay[page][column] = shown
}

func (s *Store) SetItemsPerPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.ItemsPerPage = n
}

func (s *Store) SetDateFormat(f string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.DateFormat = f
}

func (s *Store) SetTimeFormat(f string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.TimeFormat = f
}

func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.Language = lang
}

func (s *Store) ItemsPerPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.ItemsPerPage
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.DarkMode
}

// ItemsPerPageOptions 返回可选的每页条目数, 包含当前值, 升序去重.
func (s *Store) ItemsPerPageOptions() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts := slices.Clone(s.cfg.Paging.ItemsPerPageOptions)
	if s.prefs.ItemsPerPage > 0 {
		opts = append(opts, s.prefs.ItemsPerPage)
	}
	slices.Sort(opts)
	return slices.Compact(opts)
}

func (s *Store) Formatter() timefmt.Formatter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return timefmt.Formatter{
		DateFormat: s.prefs.DateFormat,
		TimeFormat: s.prefs.TimeFormat,
		Language:   s.prefs.Language,
		Location:   s.location,
	}
}

// Renderer builds the table renderer of page from its configured layout and
// the current preferences. Unknown pages use the dashboard layout.
func (s *Store) Renderer(page string) jobview.Renderer {
	layout, ok := s.cfg.Layouts[page]
	if !ok {
		page = config.PageDashboard
		layout = s.cfg.Layouts[page]
	}
	prefs := s.Snapshot()
	return jobview.NewRenderer(page, layout, prefs.ColumnDisplay, s.Formatter(), jobview.PortalLinks(s.cfg.JobStatsPortal))
}

// Registry 按会话保存偏好设置. 新会话从配置文件中的默认偏好开始.
type Registry struct {
	cfg      config.File
	sessions *session.Map[*Store]

	mu       sync.RWMutex
	location *time.Location
}

func NewRegistry(cfg config.File, maxSessions int) *Registry {
	r := &Registry{cfg: cfg}
	r.sessions = session.New(maxSessions, func() *Store {
		s := NewStore(r.cfg)
		s.SetLocation(r.zone())
		return s
	})
	return r
}

// SetLocation sets the zone of sessions created afterwards.
func (r *Registry) SetLocation(loc *time.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = loc
}

func (r *Registry) zone() *time.Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.location
}

// For returns the preferences of session key.
func (r *Registry) For(key string) *Store {
	return r.sessions.Get(key)
}

func (r *Registry) Renderer(key, page string) jobview.Renderer {
	return r.For(key).Renderer(page)
}

func (r *Registry) ItemsPerPage(key string) int {
	return r.For(key).ItemsPerPage()
}

func (r *Registry) DarkMode(key string) bool {
	return r.For(key).DarkMode()
}

func (r *Registry) Formatter(key string) timefmt.Formatter {
	return r.For(key).Formatter()
}
