package notes

import (
	"errors"
	"log/slog"
	"net/http"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/timefmt"
	"cwdash/internal/pkg/log"
	"cwdash/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Formatting supplies the date preferences of a session, used for note meta info.
type Formatting interface {
	Formatter(session string) timefmt.Formatter
}

type Router struct {
	viewer *Viewer
	prefs  Formatting
	logger *slog.Logger
}

func NewRouter(viewer *Viewer, prefs Formatting, logger *slog.Logger) *Router {
	return &Router{
		viewer: viewer,
		prefs:  prefs,
		logger: log.OrDefault(logger),
	}
}

func (rt *Router) Register(r *gin.Engine) {
	r.GET("/notes/:jid", rt.HandlerGetNotes) // GET /notes/{jid}
}

// HandlerGetNotes 渲染 jid 所在的笔记目录树, 笔记列表以及笔记内容.
// @Summary 笔记查看
// @Tags notes
// @Produce html
// @Param jid path string true "Joplin 目录或笔记 ID"
// @Success 200 {string} string
// @Failure 502 {object} response.Response
// @Router /notes/{jid} [get]
func (rt *Router) HandlerGetNotes(c *gin.Context) {
	jid := c.Param("jid")
	ctx := clockwork.WithCookies(c.Request.Context(), c.Request.Cookies())
	var f timefmt.Formatter
	if rt.prefs != nil {
		f = rt.prefs.Formatter(rt.viewer.SessionKey(ctx))
	}

	body, err := rt.viewer.Render(ctx, jid, f)
	if err != nil {
		rt.logger.Error("unable to render notes", "jid", jid, "err", err)
		status := http.StatusInternalServerError
		if errors.Is(err, clockwork.ErrUnexpectedStatus) {
			status = http.StatusBadGateway
		}
		c.JSON(status, response.Response{Detail: "unable to load notes"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
