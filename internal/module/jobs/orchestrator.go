package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/jobview"
	"cwdash/internal/pkg/log"
	"cwdash/internal/pkg/session"

	"github.com/google/uuid"
)

// Fetcher is the part of the backend client the orchestrator needs.
type Fetcher interface {
	FetchJobs(ctx context.Context, ep clockwork.Endpoint, username string, timeWindow int) (clockwork.JobsResponse, error)
	// SessionKey names the backend session ctx belongs to.
	SessionKey(ctx context.Context) string
}

// Preferences supplies the rendering choices of a session.
type Preferences interface {
	Renderer(session, page string) jobview.Renderer
	ItemsPerPage(session string) int
}

// state 单个会话的数据与显示过滤器.
type state struct {
	store *Store

	mu     sync.RWMutex
	filter jobview.DisplayFilter
}

// Orchestrator fetches jobs, keeps the latest response of each session and
// derives views of it.
type Orchestrator struct {
	fetcher  Fetcher
	endpoint clockwork.Endpoint
	prefs    Preferences
	maxStep  int
	logger   *slog.Logger
	sessions *session.Map[*state]
}

// NewOrchestrator creates an orchestrator whose sessions start from filter.
// maxSessions <= 0 uses session.DefaultMaxSessions.
func NewOrchestrator(fetcher Fetcher, endpoint clockwork.Endpoint, prefs Preferences,
	filter jobview.DisplayFilter, maxStep, maxSessions int, logger *slog.Logger) *Orchestrator {
	initial := filter.Clone()
	return &Orchestrator{
		fetcher:  fetcher,
		endpoint: endpoint,
		prefs:    prefs,
		maxStep:  maxStep,
		logger:   log.OrDefault(logger),
		sessions: session.New(maxSessions, func() *state {
			return &state{store: NewStore(), filter: initial.Clone()}
		}),
	}
}

// SessionKey names the session of ctx.
func (o *Orchestrator) SessionKey(ctx context.Context) string {
	return o.fetcher.SessionKey(ctx)
}

func (o *Orchestrator) session(ctx context.Context) (string, *state) {
	key := o.SessionKey(ctx)
	return key, o.sessions.Get(key)
}

// DisplayFilter returns a copy of the display filter of the session of ctx.
func (o *Orchestrator) DisplayFilter(ctx context.Context) jobview.DisplayFilter {
	_, s := o.session(ctx)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Clone()
}

// SetDisplayFilter replaces the display filter used by later refreshes of the
// session of ctx.
func (o *Orchestrator) SetDisplayFilter(ctx context.Context, f jobview.DisplayFilter) {
	_, s := o.session(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f.Clone()
}

// RefreshAll 向后端发起一次查询并返回基于本次响应的视图.
// 只有比已保存数据更新的响应才会被保存, 供之后的 RefreshDisplay 使用.
// 查询失败时保留原有数据, 返回基于旧数据的视图以及错误.
func (o *Orchestrator) RefreshAll(ctx context.Context, q jobview.QueryFilter, f jobview.DisplayFilter, page int, layout string) (jobview.View, error) {
	key, s := o.session(ctx)
	reqID := uuid.NewString()
	logger := o.logger.With("request_id", reqID, "endpoint", string(o.endpoint), "session", key)
	gen := s.store.Begin()

	logger.Debug("fetching jobs", "username", q.Username, "time_window", q.TimeWindow, "generation", gen)
	resp, err := o.fetcher.FetchJobs(ctx, o.endpoint, q.Username, q.TimeWindow)
	if err != nil {
		logger.Error("unable to fetch jobs", "err", err)
		latest, _ := s.store.Latest()
		return o.build(key, latest, f, page, layout), fmt.Errorf("fetch jobs (request %s): %w", reqID, err)
	}
	if !s.store.Commit(gen, resp) {
		logger.Debug("newer response already stored, not saving", "generation", gen)
	}
	return o.build(key, resp, f, page, layout), nil
}

// RefreshDisplay recomputes the view from the stored response of the session
// of ctx without contacting the backend.
func (o *Orchestrator) RefreshDisplay(ctx context.Context, f jobview.DisplayFilter, page int, layout string) jobview.View {
	key, s := o.session(ctx)
	latest, _ := s.store.Latest()
	return o.build(key, latest, f, page, layout)
}

func (o *Orchestrator) build(key string, resp clockwork.JobsResponse, f jobview.DisplayFilter, page int, layout string) jobview.View {
	if f.ItemsPerPage <= 0 {
		f.ItemsPerPage = o.prefs.ItemsPerPage(key)
	}
	return jobview.Build(resp, f, page, o.prefs.Renderer(key, layout), o.maxStep)
}
