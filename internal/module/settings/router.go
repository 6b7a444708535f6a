package settings

import (
	"context"
	"log/slog"
	"net/url"

	"cwdash/internal/pkg/log"

	"github.com/gin-gonic/gin"
)

// Writer forwards a preference change to the backend and tells which backend
// session a request belongs to.
type Writer interface {
	WriteSetting(ctx context.Context, path string, params url.Values) error
	SessionKey(ctx context.Context) string
}

type Router struct {
	prefs  *Registry
	writer Writer
	logger *slog.Logger
}

func NewRouter(prefs *Registry, writer Writer, logger *slog.Logger) *Router {
	return &Router{
		prefs:  prefs,
		writer: writer,
		logger: log.OrDefault(logger),
	}
}

func (rt *Router) Register(r *gin.Engine) {
	g := r.Group("/settings/web")
	{
		g.GET("", rt.HandlerGetSettings)                         // GET /settings/web
		g.GET("/dark_mode/:action", rt.HandlerDarkMode)          // GET /settings/web/dark_mode/{set|unset}
		g.GET("/column/:action", rt.HandlerColumn)               // GET /settings/web/column/{set|unset}
		g.GET("/nbr_items_per_page/set", rt.HandlerItemsPerPage) // GET /settings/web/nbr_items_per_page/set
		g.GET("/date_format/set", rt.HandlerDateFormat)          // GET /settings/web/date_format/set
		g.GET("/time_format/set", rt.HandlerTimeFormat)          // GET /settings/web/time_format/set
		g.GET("/language/set", rt.HandlerLanguage)               // GET /settings/web/language/set
	}
}
