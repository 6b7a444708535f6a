package jobs

import (
	"log/slog"
	"slices"

	"cwdash/internal/pkg/log"

	"github.com/gin-gonic/gin"
)

// UI exposes the preferences the HTML pages need beyond the table itself.
type UI interface {
	DarkMode(session string) bool
}

type Router struct {
	orch     *Orchestrator
	ui       UI
	clusters []string
	logger   *slog.Logger
}

func NewRouter(orch *Orchestrator, ui UI, clusters []string, logger *slog.Logger) *Router {
	return &Router{
		orch:     orch,
		ui:       ui,
		clusters: slices.Clone(clusters),
		logger:   log.OrDefault(logger),
	}
}

func (rt *Router) Register(r *gin.Engine) {
	r.GET("/dashboard", rt.HandlerDashboard)                // GET /dashboard
	r.GET("/dashboard/display", rt.HandlerDashboardDisplay) // GET /dashboard/display
	r.GET("/jobs/list", rt.HandlerJobsList)                 // GET /jobs/list

	v1 := r.Group("/api/v1/")
	{
		g := v1.Group("/jobs")
		g.GET("", rt.HandlerListJobs)                        // GET /api/v1/jobs
		g.GET("/display-filter", rt.HandlerGetDisplayFilter) // GET /api/v1/jobs/display-filter
		g.PUT("/display-filter", rt.HandlerPutDisplayFilter) // PUT /api/v1/jobs/display-filter
	}
}
