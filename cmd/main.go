package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"cwdash/internal/app/docs"
	"cwdash/internal/app/router"
	"cwdash/internal/module/jobs"
	"cwdash/internal/module/notes"
	"cwdash/internal/module/settings"
	"cwdash/internal/pkg/client/clockwork"
	"cwdash/internal/pkg/config"
	"cwdash/internal/pkg/jobview"
	"cwdash/internal/pkg/log"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/common/version"
	"github.com/pterm/pterm"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type options struct {
	log                log.Options
	clockworkURL       string
	clockworkTimeout   time.Duration
	sessionCookie      string
	endpoint           string
	dashboardConfig    string
	srvListenAddr      string
	srvShutdownTimeout time.Duration
	maxSessions        int
	jobsUsername       string
	jobsPage           int
}

// @title           cwdash
// @version         0.1.0
// @description     job-monitoring dashboard front service
// @schema			http
// @BasePath        /
func main() {
	var opts options
	app := kingpin.New(filepath.Base(os.Args[0]), "Job-monitoring dashboard in front of a Clockwork backend.")
	app.HelpFlag.Short('h')
	// Logging related flags
	app.Flag("log.level", "Log level, one of [debug, info, warn, error].").Default("info").EnumVar(&opts.log.Level, "debug", "info", "warn", "error")
	app.Flag("log.output", "Log output, one of [stdout, stderr, file].").Default("stderr").EnumVar(&opts.log.Output, "stdout", "stderr", "file")
	app.Flag("log.format", "Log format, one of [json, text].").Default("text").EnumVar(&opts.log.Format, "json", "text")
	app.Flag("log.file", "Log file path when --log.output=file.").PlaceHolder("PATH").StringVar(&opts.log.File)
	// Backend related flags
	app.Flag("clockwork.url", "Base URL of the Clockwork backend.").Default("http://127.0.0.1:5000").StringVar(&opts.clockworkURL)
	app.Flag("clockwork.timeout", "Timeout for backend HTTP requests (Go duration, 0 disables it).").Default("0s").DurationVar(&opts.clockworkTimeout)
	app.Flag("clockwork.session-cookie", "Session cookie sent when the browser supplies none, as name=value.").PlaceHolder("NAME=VALUE").StringVar(&opts.sessionCookie)
	app.Flag("clockwork.endpoint", "Job listing endpoint, one of [list, search, api].").Default("list").EnumVar(&opts.endpoint, "list", "search", "api")
	app.Flag("dashboard.config", "YAML dashboard configuration file.").PlaceHolder("PATH").StringVar(&opts.dashboardConfig)

	serveCmd := app.Command("serve", "Run the dashboard HTTP server.").Default()
	serveCmd.Flag("server.listen-addr", "Server listen address (e.g. :8080 or 127.0.0.1:8080)").Default(":8081").StringVar(&opts.srvListenAddr)
	serveCmd.Flag("server.shutdown-timeout", "Graceful shutdown timeout (e.g. 10s)").Default("10s").DurationVar(&opts.srvShutdownTimeout)
	serveCmd.Flag("server.max-sessions", "Browser sessions whose jobs and preferences are kept in memory; the least recently used is dropped.").Default("10000").IntVar(&opts.maxSessions)

	jobsCmd := app.Command("jobs", "Fetch jobs once and print them as a table.")
	jobsCmd.Flag("username", "Only jobs of this user, all for everyone.").Default("all").StringVar(&opts.jobsUsername)
	jobsCmd.Flag("page", "Page to print.").Default("1").IntVar(&opts.jobsPage)

	// Cross-flag validation
	app.PreAction(func(*kingpin.ParseContext) error {
		if strings.EqualFold(opts.log.Output, "file") {
			if !isValidFilePath(opts.log.File) {
				return fmt.Errorf("invalid --log.file path: %q", opts.log.File)
			}
		}
		if _, err := parseBaseURL(opts.clockworkURL); err != nil {
			return err
		}
		if opts.sessionCookie != "" {
			if _, _, ok := splitCookie(opts.sessionCookie); !ok {
				return fmt.Errorf("invalid --clockwork.session-cookie %q, want NAME=VALUE", opts.sessionCookie)
			}
		}
		if opts.clockworkTimeout < 0 {
			return fmt.Errorf("--clockwork.timeout must not be negative")
		}
		if opts.maxSessions < 0 {
			return fmt.Errorf("--server.max-sessions must not be negative")
		}
		return nil
	})
	app.Version(version.Print("cwdash"))

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("failed to parse commandline arguments: %w", err))
		app.Usage(os.Args[1:])
		os.Exit(2)
	}
	// 创建 Logger
	logger, logClose, err := log.NewLogger(opts.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logClose()

	cfg, err := config.Load(opts.dashboardConfig)
	if err != nil {
		logger.Error("unable to load dashboard config", "err", err)
		os.Exit(1)
	}
	client, err := newClient(opts, logger)
	if err != nil {
		logger.Error("unable to create backend client", "err", err)
		os.Exit(1)
	}

	switch cmd {
	case jobsCmd.FullCommand():
		err = runJobs(opts, cfg, client, logger)
	default:
		err = runServe(opts, cfg, client, logger)
	}
	if err != nil {
		logger.Error("command failed", "command", cmd, "err", err)
		logClose()
		os.Exit(1)
	}
}

func newClient(opts options, logger *slog.Logger) (*clockwork.Client, error) {
	base, err := parseBaseURL(opts.clockworkURL)
	if err != nil {
		return nil, err
	}
	c := clockwork.New(&http.Client{}, base, opts.clockworkTimeout, logger)
	if name, value, ok := splitCookie(opts.sessionCookie); ok {
		c.SetSessionCookie(name, value)
	}
	return c, nil
}

type services struct {
	prefs *settings.Registry
	orch  *jobs.Orchestrator
}

func newServices(opts options, cfg config.File, client *clockwork.Client, logger *slog.Logger) (services, error) {
	ep, err := clockwork.ParseEndpoint(opts.endpoint)
	if err != nil {
		return services{}, err
	}
	prefs := settings.NewRegistry(cfg, opts.maxSessions)
	filter := jobview.NewDisplayFilter(cfg.DisplayFilter, 0)
	orch := jobs.NewOrchestrator(client, ep, prefs, filter, cfg.Paging.MaxSteppedPage, opts.maxSessions, logger)
	return services{prefs: prefs, orch: orch}, nil
}

func runServe(opts options, cfg config.File, client *clockwork.Client, logger *slog.Logger) error {
	s, err := newServices(opts, cfg, client, logger)
	if err != nil {
		return err
	}
	logger.Info("starting cwdash", "version", version.Info(), "build_context", version.BuildContext(), "endpoint", opts.endpoint)

	// 创建各模块路由
	jobsRouter := jobs.NewRouter(s.orch, s.prefs, cfg.Clusters, logger)
	settingsRouter := settings.NewRouter(s.prefs, client, logger)
	notesRouter := notes.NewRouter(notes.NewViewer(client, logger), s.prefs, logger)
	// Build router
	r := router.New(logger)

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Register(
		jobsRouter,
		settingsRouter,
		notesRouter,
	)
	router.Mount(r)
	srv := &http.Server{
		Addr:              opts.srvListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in background
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", opts.srvListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
		// proceed to shutdown
	}
	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), opts.srvShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}
	logger.Info("server exiting")
	return nil
}

// runJobs 拉取一次作业数据, 按配置的显示过滤器过滤后以表格形式输出到终端.
func runJobs(opts options, cfg config.File, client *clockwork.Client, logger *slog.Logger) error {
	s, err := newServices(opts, cfg, client, logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	q := jobview.QueryFilter{Username: opts.jobsUsername}
	view, err := s.orch.RefreshAll(ctx, q, s.orch.DisplayFilter(ctx), opts.jobsPage, config.PageJobsList)
	if err != nil {
		return err
	}

	data := pterm.TableData{}
	header := make([]string, 0, len(view.Table.Header))
	for _, c := range view.Table.Header {
		header = append(header, c.Title)
	}
	data = append(data, header)
	for _, row := range view.Table.Rows {
		line := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			line = append(line, cellText(cell))
		}
		data = append(data, line)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	c := view.Counters
	pterm.Info.Printfln("completed %s  running %s  pending %s  stalled %s",
		humanize.Comma(int64(c.Completed)), humanize.Comma(int64(c.Running)),
		humanize.Comma(int64(c.Pending)), humanize.Comma(int64(c.Stalled)))
	pterm.Info.Printfln("page %d/%d, %s of %s jobs shown after filtering",
		view.Page, view.TotalPages, humanize.Comma(int64(view.TotalItems)), humanize.Comma(int64(view.NbrTotalJobs)))
	return nil
}

func cellText(c jobview.Cell) string {
	if len(c.Links) == 0 {
		return c.Text
	}
	hrefs := make([]string, 0, len(c.Links))
	for _, l := range c.Links {
		hrefs = append(hrefs, l.Href)
	}
	return strings.Join(hrefs, " ")
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --clockwork.url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid --clockwork.url %q: want http(s)://host[:port]", raw)
	}
	return u, nil
}

func splitCookie(s string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(s, "=")
	return strings.TrimSpace(name), strings.TrimSpace(value), ok && strings.TrimSpace(name) != "" && strings.TrimSpace(value) != ""
}

// isValidFilePath performs a light-weight validation for file paths.
// It accepts both absolute and relative paths and rejects empty paths
// or paths that end with a path separator (which usually indicate a directory).
func isValidFilePath(p string) bool {
	if strings.TrimSpace(p) == "" {
		return false
	}
	// Reject paths that end with a separator, which imply directories
	if strings.HasSuffix(p, string(os.PathSeparator)) {
		return false
	}
	base := filepath.Base(p)
	if base == "." || base == string(os.PathSeparator) {
		return false
	}
	return true
}
