package jobs

import (
	"context"
	"net/http"
	"slices"
	"sort"
	"strings"

	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/common/paging"
	"cwdash/internal/pkg/common/slurm"
	"cwdash/internal/pkg/config"
	"cwdash/internal/pkg/jobview"
	"cwdash/internal/pkg/response"
	apierrors "cwdash/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
)

const maxPageSize = 1000

type jobsQuery struct {
	paging.PagingQuery
	jobview.QueryFilter
}

// parseQuery 解析分页与查询参数. username 缺省为 all.
func parseQuery(c *gin.Context) (jobsQuery, error) {
	var q jobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, errors.New(http.StatusBadRequest, "invalid query parameters: %v", err)
	}
	if q.TimeWindow < 0 {
		return q, errors.New(http.StatusUnprocessableEntity, "time_window must not be negative, got %d", q.TimeWindow)
	}
	if q.Username == "" {
		q.Username = "all"
	}
	// 后端也接受邮箱形式的用户名
	if strings.Contains(q.Username, "@") && !strfmt.IsEmail(q.Username) {
		return q, errors.New(http.StatusUnprocessableEntity, "username %q is not a valid email address", q.Username)
	}
	q.SetDefaults(1, 0, maxPageSize)
	return q, nil
}

func (rt *Router) displayFilter(ctx context.Context, q jobsQuery) jobview.DisplayFilter {
	f := rt.orch.DisplayFilter(ctx)
	if q.PageSize > 0 {
		f.ItemsPerPage = q.PageSize
	}
	return f
}

func requestContext(c *gin.Context) context.Context {
	return clockwork.WithCookies(c.Request.Context(), c.Request.Cookies())
}

func (rt *Router) page(c *gin.Context, layout, title string, fetch bool) {
	q, err := parseQuery(c)
	if err != nil {
		apierrors.Abort(c, err)
		return
	}
	ctx := requestContext(c)
	f := rt.displayFilter(ctx, q)

	var (
		view   jobview.View
		errMsg string
	)
	if fetch {
		view, err = rt.orch.RefreshAll(ctx, q.QueryFilter, f, q.Page, layout)
		if err != nil {
			errMsg = "Unable to refresh jobs, showing the last known data."
		}
	} else {
		view = rt.orch.RefreshDisplay(ctx, f, q.Page, layout)
	}

	dark := rt.ui != nil && rt.ui.DarkMode(rt.orch.SessionKey(ctx))
	body, err := renderPage(title, dark, view, errMsg)
	if err != nil {
		rt.logger.Error("unable to render page", "layout", layout, "err", err)
		c.String(http.StatusInternalServerError, "unable to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// HandlerDashboard 刷新作业数据并渲染仪表盘页面.
// @Summary 仪表盘
// @Tags jobs
// @Produce html
// @Param username query string false "用户名, all 表示全部" default(all)
// @Param time_window query int false "时间窗口(秒)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条目数"
// @Success 200 {string} string
// @Router /dashboard [get]
func (rt *Router) HandlerDashboard(c *gin.Context) {
	rt.page(c, config.PageDashboard, "Dashboard", true)
}

// HandlerDashboardDisplay 使用已保存的数据重新渲染仪表盘, 不访问后端.
// @Summary 仪表盘(仅重新显示)
// @Tags jobs
// @Produce html
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条目数"
// @Success 200 {string} string
// @Router /dashboard/display [get]
func (rt *Router) HandlerDashboardDisplay(c *gin.Context) {
	rt.page(c, config.PageDashboard, "Dashboard", false)
}

// HandlerJobsList 刷新作业数据并渲染作业列表页面.
// @Summary 作业列表
// @Tags jobs
// @Produce html
// @Param username query string false "用户名, all 表示全部" default(all)
// @Param time_window query int false "时间窗口(秒)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条目数"
// @Success 200 {string} string
// @Router /jobs/list [get]
func (rt *Router) HandlerJobsList(c *gin.Context) {
	rt.page(c, config.PageJobsList, "Jobs", true)
}

// JobsResult is the results field of GET /api/v1/jobs.
type JobsResult struct {
	Counters     jobview.Counters `json:"counters"`
	NbrTotalJobs int              `json:"nbr_total_jobs"`
	Jobs         []jobview.JobRow `json:"jobs"`
}

// HandlerListJobs 刷新作业数据并返回当前页的作业.
// @Summary 作业列表
// @Description 查询后端作业, 按显示过滤器过滤后分页返回. count 为过滤后的作业总数.
// @Tags jobs
// @Produce json
// @Param username query string false "用户名, all 表示全部" default(all)
// @Param time_window query int false "时间窗口(秒)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条目数"
// @Success 200 {object} response.Response{results=JobsResult}
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/v1/jobs [get]
func (rt *Router) HandlerListJobs(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		apierrors.Abort(c, err)
		return
	}

	ctx := requestContext(c)
	view, err := rt.orch.RefreshAll(ctx, q.QueryFilter, rt.displayFilter(ctx, q), q.Page, config.PageAPIList)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.Response{Detail: "unable to fetch jobs from backend"})
		return
	}

	c.JSON(http.StatusOK, response.Paged(c.Request.URL, view.Page, view.PageSize, view.TotalItems, JobsResult{
		Counters:     view.Counters,
		NbrTotalJobs: view.NbrTotalJobs,
		Jobs:         jobview.Rows(view.Jobs),
	}))
}

// HandlerGetDisplayFilter 获取当前显示过滤器.
// @Summary 获取显示过滤器
// @Tags jobs
// @Produce json
// @Success 200 {object} response.Response{results=jobview.DisplayFilter}
// @Router /api/v1/jobs/display-filter [get]
func (rt *Router) HandlerGetDisplayFilter(c *gin.Context) {
	c.JSON(http.StatusOK, response.Response{Results: rt.orch.DisplayFilter(requestContext(c))})
}

// HandlerPutDisplayFilter 替换显示过滤器. 未列出的集群和状态将被隐藏.
// @Summary 替换显示过滤器
// @Tags jobs
// @Accept json
// @Produce json
// @Param filter body jobview.DisplayFilter true "显示过滤器"
// @Success 200 {object} response.Response{results=jobview.DisplayFilter}
// @Failure 400 {object} response.Response
// @Router /api/v1/jobs/display-filter [put]
func (rt *Router) HandlerPutDisplayFilter(c *gin.Context) {
	var f jobview.DisplayFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		apierrors.Abort(c, errors.New(http.StatusBadRequest, "invalid display filter: %v", err))
		return
	}
	if err := rt.validateFilter(f); err != nil {
		apierrors.Abort(c, err)
		return
	}
	ctx := requestContext(c)
	rt.orch.SetDisplayFilter(ctx, f)
	c.JSON(http.StatusOK, response.Response{Results: rt.orch.DisplayFilter(ctx)})
}

func (rt *Router) validateFilter(f jobview.DisplayFilter) error {
	var errs []error
	for _, k := range sortedKeys(f.ClusterName) {
		if !slices.Contains(rt.clusters, k) {
			errs = append(errs, errors.EnumFail("cluster_name", "body", k, asValues(rt.clusters)))
		}
	}
	for _, k := range sortedKeys(f.JobState) {
		if !slices.Contains(slurm.States(), k) {
			errs = append(errs, errors.EnumFail("job_state", "body", k, asValues(slurm.States())))
		}
	}
	if f.ItemsPerPage < 0 || f.ItemsPerPage > maxPageSize {
		errs = append(errs, errors.New(http.StatusUnprocessableEntity, "items_per_page must be within [0, %d], got %d", maxPageSize, f.ItemsPerPage))
	}
	return apierrors.Collect(errs...)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asValues(s []string) []interface{} {
	out := make([]interface{}, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	return out
}
