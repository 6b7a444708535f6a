package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options 描述日志输出配置, 与命令行参数 log.* 一一对应.
type Options struct {
	Output string // stdout, stderr, file
	Format string // json, text
	File   string // Output 为 file 时的日志文件路径
	Level  string // debug, info, warn, error
}

// NewLogger 根据 opts 创建 Logger 并设置为默认 Logger. 返回的 cleanup 用于关闭日志文件.
func NewLogger(opts Options) (*slog.Logger, func(), error) {
	w, closer, err := openOutput(opts.Output, opts.File)
	if err != nil {
		return nil, nil, err
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		closeQuietly(closer)
		return nil, nil, err
	}
	ho := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, ho)
	case "text":
		handler = slog.NewTextHandler(w, ho)
	default:
		closeQuietly(closer)
		return nil, nil, fmt.Errorf("unsupported log format: %s", opts.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, func() { closeQuietly(closer) }, nil
}

// ParseLevel converts a level flag value into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level: %s", level)
	}
}

func openOutput(output, filename string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	case "file":
		if filename == "" {
			return nil, nil, fmt.Errorf("unable to create log file which name is null(\"\")")
		}
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create log file(%s): %w", filename, err)
		}
		return f, f, nil
	default:
		return nil, nil, fmt.Errorf("unsupported log output: %s", output)
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
