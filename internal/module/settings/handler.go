package settings

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/timefmt"
	"cwdash/internal/pkg/config"
	"cwdash/internal/pkg/response"
	apierrors "cwdash/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/errors"
)

// Settings is the body of GET /settings/web.
type Settings struct {
	Preferences
	ItemsPerPageOptions []int    `json:"nbr_items_per_page_options"`
	DateFormats         []string `json:"date_formats"`
	TimeFormats         []string `json:"time_formats"`
	Languages           []string `json:"languages"`
}

func settingsOf(store *Store) Settings {
	return Settings{
		Preferences:         store.Snapshot(),
		ItemsPerPageOptions: store.ItemsPerPageOptions(),
		DateFormats:         timefmt.DateFormats(),
		TimeFormats:         timefmt.TimeFormats(),
		Languages:           timefmt.Languages(),
	}
}

// HandlerGetSettings 获取当前偏好设置及可选值.
// @Summary 获取偏好设置
// @Tags settings
// @Produce json
// @Success 200 {object} response.Response{results=Settings}
// @Router /settings/web [get]
func (rt *Router) HandlerGetSettings(c *gin.Context) {
	rt.ok(c, rt.storeFor(c))
}

func requestContext(c *gin.Context) context.Context {
	return clockwork.WithCookies(c.Request.Context(), c.Request.Cookies())
}

// storeFor 返回当前请求所属会话的偏好设置.
func (rt *Router) storeFor(c *gin.Context) *Store {
	if rt.writer == nil {
		return rt.prefs.For(clockwork.SessionKey(c.Request.Cookies()))
	}
	return rt.prefs.For(rt.writer.SessionKey(requestContext(c)))
}

// forward 将修改同步到后端. 后端失败只记录日志, 本地设置照常生效.
func (rt *Router) forward(c *gin.Context, path string, params url.Values) {
	if rt.writer == nil {
		return
	}
	if err := rt.writer.WriteSetting(requestContext(c), path, params); err != nil {
		rt.logger.Warn("unable to forward setting to backend", "path", path, "err", err)
	}
}

func (rt *Router) ok(c *gin.Context, store *Store) {
	c.JSON(http.StatusOK, response.Response{Results: settingsOf(store)})
}

func actionValue(c *gin.Context) (bool, error) {
	switch a := c.Param("action"); a {
	case "set":
		return true, nil
	case "unset":
		return false, nil
	default:
		return false, errors.EnumFail("action", "path", a, []interface{}{"set", "unset"})
	}
}

// HandlerDarkMode 开启/关闭深色模式.
// @Summary 切换深色模式
// @Tags settings
// @Produce json
// @Param action path string true "set 或 unset" Enums(set, unset)
// @Success 200 {object} response.Response{results=Settings}
// @Failure 400 {object} response.Response
// @Router /settings/web/dark_mode/{action} [get]
func (rt *Router) HandlerDarkMode(c *gin.Context) {
	on, err := actionValue(c)
	if err != nil {
		apierrors.Abort(c, err)
		return
	}
	rt.forward(c, "dark_mode/"+c.Param("action"), nil)
	store := rt.storeFor(c)
	store.SetDarkMode(on)
	rt.ok(c, store)
}

var knownPages = []string{config.PageDashboard, config.PageJobsList, config.PageAPIList}

func knownColumns() []string {
	return append(config.KnownColumns(), ColumnUserProps)
}

// HandlerColumn 设置某页面某列是否显示.
// @Summary 切换列显示
// @Tags settings
// @Produce json
// @Param action path string true "set 或 unset" Enums(set, unset)
// @Param page query string true "页面" Enums(dashboard, jobs_list, api_list)
// @Param column query string true "列名"
// @Success 200 {object} response.Response{results=Settings}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /settings/web/column/{action} [get]
func (rt *Router) HandlerColumn(c *gin.Context) {
	shown, actionErr := actionValue(c)
	page, column := c.Query("page"), c.Query("column")

	pageErr := checkEnum("page", "query", page, knownPages)
	columnErr := checkEnum("column", "query", column, knownColumns())
	if err := apierrors.Collect(actionErr, pageErr, columnErr); err != nil {
		apierrors.Abort(c, err)
		return
	}
	if shown && ForcedHidden(page, column) {
		apierrors.Abort(c, errors.New(http.StatusUnprocessableEntity, "column %s cannot be shown on page %s", column, page))
		return
	}

	rt.forward(c, "column/"+c.Param("action"), url.Values{"page": {page}, "column": {column}})
	store := rt.storeFor(c)
	store.SetColumn(page, column, shown)
	rt.ok(c, store)
}

// HandlerItemsPerPage 设置每页显示条目数.
// @Summary 设置每页条目数
// @Tags settings
// @Produce json
// @Param nbr_items_per_page query int true "每页条目数"
// @Success 200 {object} response.Response{results=Settings}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /settings/web/nbr_items_per_page/set [get]
func (rt *Router) HandlerItemsPerPage(c *gin.Context) {
	raw := c.Query("nbr_items_per_page")
	if raw == "" {
		apierrors.Abort(c, errors.Required("nbr_items_per_page", "query", raw))
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		apierrors.Abort(c, errors.InvalidType("nbr_items_per_page", "query", "integer", raw))
		return
	}
	if n < 1 {
		apierrors.Abort(c, errors.New(http.StatusUnprocessableEntity, "nbr_items_per_page must be at least 1, got %d", n))
		return
	}
	rt.forward(c, "nbr_items_per_page/set", url.Values{"nbr_items_per_page": {raw}})
	store := rt.storeFor(c)
	store.SetItemsPerPage(n)
	rt.ok(c, store)
}

func checkEnum(name, in, v string, allowed []string) error {
	if v == "" {
		return errors.Required(name, in, v)
	}
	if !slices.Contains(allowed, v) {
		values := make([]interface{}, 0, len(allowed))
		for _, a := range allowed {
			values = append(values, a)
		}
		return errors.EnumFail(name, in, v, values)
	}
	return nil
}

func enumQuery(c *gin.Context, name string, allowed []string) (string, error) {
	v := c.Query(name)
	if err := checkEnum(name, "query", v, allowed); err != nil {
		return "", err
	}
	return v, nil
}

// HandlerDateFormat 设置日期显示格式.
// @Summary 设置日期格式
// @Tags settings
// @Produce json
// @Param date_format query string true "日期格式" Enums(words, unix_timestamp, YYYY/MM/DD, DD/MM/YYYY, MM/DD/YYYY)
// @Success 200 {object} response.Response{results=Settings}
// @Failure 400 {object} response.Response
// @Router /settings/web/date_format/set [get]
func (rt *Router) HandlerDateFormat(c *gin.Context) {
	v, err := enumQuery(c, "date_format", timefmt.DateFormats())
	if err != nil {
		apierrors.Abort(c, err)
		return
	}
	rt.forward(c, "date_format/set", url.Values{"date_format": {v}})
	store := rt.storeFor(c)
	store.SetDateFormat(v)
	rt.ok(c, store)
}

// HandlerTimeFormat 设置时间显示格式.
// @Summary 设置时间格式
// @Tags settings
// @Produce json
// @Param time_format query string true "时间格式" Enums(AM/PM, 24h)
// @Success 200 {object} response.Response{results=Settings}
// @Failure 400 {object} response.Response
// @Router /settings/web/time_format/set [get]
func (rt *Router) HandlerTimeFormat(c *gin.Context) {
	v, err := enumQuery(c, "time_format", timefmt.TimeFormats())
	if err != nil {
		apierrors.Abort(c, err)
		return
	}
	rt.forward(c, "time_format/set", url.Values{"time_format": {v}})
	store := rt.storeFor(c)
	store.SetTimeFormat(v)
	rt.ok(c, store)
}

// HandlerLanguage 设置界面语言.
// @Summary 设置语言
// @Tags settings
// @Produce json
// @Param language query string true "语言" Enums(en, fr)
// @Success 200 {object} response.Response{results=Settings}
// @Failure 400 {object} response.Response
// @Router /settings/web/language/set [get]
func (rt *Router) HandlerLanguage(c *gin.Context) {
	v, err := enumQuery(c, "language", timefmt.Languages())
	if err != nil {
		apierrors.Abort(c, err)
		return
	}
	rt.forward(c, "language/set", url.Values{"language": {v}})
	store := rt.storeFor(c)
	store.SetLanguage(v)
	rt.ok(c, store)
}
