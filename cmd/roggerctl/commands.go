package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/rogger/pkg/config/xconf"
	"github.com/omeyang/rogger/pkg/observability/xlog"
	"github.com/omeyang/rogger/pkg/observability/xrotate"
	"github.com/omeyang/rogger/pkg/observability/xsink"
)

// maxLineBytes 单行输入上限，超过时 pipe 以参数错误退出
const maxLineBytes = 1 << 20

// exitError 携带退出码的错误，err 为 nil 时表示输出已完成。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// usageError 参数错误，对应退出码 2。
type usageError struct {
	msg string
	err error
}

func (e *usageError) Error() string {
	if e.err == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *usageError) Unwrap() error { return e.err }

// isCLIUsageError 判断是否为 urfave/cli 框架产生的参数错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, p := range []string{
		"flag provided but not defined",
		"Required flag",
		"invalid value",
		"No help topic",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createPipeCommand(),
		createLsCommand(),
	}
}

func createPipeCommand() *cli.Command {
	return &cli.Command{
		Name:  "pipe",
		Usage: "从标准输入逐行写入日志",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "日志配置文件（YAML/JSON）"},
			&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "最低日志级别 (debug/info/warn/error)"},
			&cli.StringFlag{Name: "service", Usage: "服务名"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "按行轮转目录"},
			&cli.StringFlag{Name: "base", Aliases: []string{"b"}, Usage: "按行轮转基础文件名"},
			&cli.IntFlag{Name: "max-lines", Aliases: []string{"n"}, Usage: "每个文件的最大行数", Value: xconf.DefaultMaxLines},
			&cli.BoolFlag{Name: "console", Usage: "同时输出到标准输出"},
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "监视配置文件，level 变更实时生效"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := pipeConfig(cmd)
			if err != nil {
				return err
			}
			root := cmd.Root()
			return cmdPipe(ctx, cfg, pipeIO{
				in:     root.Reader,
				out:    root.Writer,
				diag:   newDiagLogger(root.ErrWriter),
				config: cmd.String("config"),
				watch:  cmd.Bool("watch"),
			})
		},
	}
}

func createLsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "按创建顺序列出轮转文件",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "轮转目录", Required: true},
			&cli.StringFlag{Name: "base", Aliases: []string{"b"}, Usage: "基础文件名", Required: true},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdLs(cmd.Root().Writer, cmd.String("dir"), cmd.String("base"))
		},
	}
}

// pipeConfig 由配置文件和命令行参数组合出日志配置，命令行优先。
func pipeConfig(cmd *cli.Command) (*xconf.LogConfig, error) {
	path := cmd.String("config")
	if cmd.Bool("watch") && path == "" {
		return nil, &usageError{msg: "--watch requires --config"}
	}

	cfg := xconf.Default()
	if path != "" {
		loaded, err := xconf.Load(path)
		if err != nil {
			return nil, &usageError{msg: "load config", err: err}
		}
		cfg = loaded
	}

	if v := cmd.String("level"); v != "" {
		cfg.Level = v
	}
	if v := cmd.String("service"); v != "" {
		cfg.ServiceName = v
	}
	dir, base := cmd.String("dir"), cmd.String("base")
	if dir != "" || base != "" {
		cfg.Rotation = xconf.RotationConfig{
			Enabled:      true,
			Dir:          dir,
			BaseFilename: base,
			MaxLines:     int(cmd.Int("max-lines")),
			FileMode:     cfg.Rotation.FileMode,
			CreateDir:    true,
		}
		// 指定了文件输出时，只有显式 --console 才保留控制台输出
		if path == "" {
			cfg.Console.Enabled = false
		}
	}
	if cmd.Bool("console") {
		cfg.Console = xconf.ConsoleConfig{Enabled: true, Stream: xconf.StreamStdout}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}
	return cfg, nil
}

// pipeIO pipe 命令的输入输出与运行参数
type pipeIO struct {
	in     io.Reader
	out    io.Writer
	diag   *slog.Logger
	config string
	watch  bool
}

// cmdPipe 逐行读取输入并写入日志，直到输入结束、写入失败或 ctx 取消。
func cmdPipe(ctx context.Context, cfg *xconf.LogConfig, pio pipeIO) error {
	logger, cleanup, err := cfg.Build(
		xconf.WithStreams(pio.out, nil),
		xconf.WithLinesOptions(
			xrotate.WithMeterProvider(otel.GetMeterProvider()),
			xrotate.WithOnError(func(err error) {
				pio.diag.Warn("rotation error", "err", err)
			}),
		),
	)
	if err != nil {
		return &usageError{err: err}
	}

	var watcher *xconf.Watcher
	if pio.watch {
		watcher, err = xconf.WatchLevel(pio.config, logger, func(err error) {
			pio.diag.Warn("config reload failed", "path", pio.config, "err", err)
		})
		if err != nil {
			_ = cleanup()
			return &usageError{msg: "watch config", err: err}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	if watcher != nil {
		g.Go(func() error {
			watcher.Start()
			return nil
		})
	}

	var written int
	g.Go(func() error {
		if watcher != nil {
			defer watcher.Stop()
		}
		n, err := pump(gctx, pio.in, logger)
		written = n
		return err
	})

	err = g.Wait()
	closeErr := cleanup()
	if err != nil {
		var tooLong *usageError
		if errors.As(err, &tooLong) {
			return err
		}
		return &exitError{code: 1, err: err}
	}
	if closeErr != nil {
		return &exitError{code: 1, err: closeErr}
	}
	pio.diag.Info("pipe finished", "lines", written)
	return nil
}

// pump 把 r 中的每一行写入 logger，返回成功写入的行数。
//
// ctx 取消时停止并返回 nil。读取在独立 goroutine 中进行，
// 阻塞的 Read 不会推迟退出。
func pump(ctx context.Context, r io.Reader, logger *xlog.Logger) (int, error) {
	type result struct {
		line string
		err  error
	}
	lines := make(chan result)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			select {
			case lines <- result{line: sc.Text()}:
			case <-quit:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case lines <- result{err: err}:
			case <-quit:
			}
		}
	}()

	var n int
	for {
		select {
		case <-ctx.Done():
			return n, nil
		case res, ok := <-lines:
			if !ok {
				return n, nil
			}
			if res.err != nil {
				if errors.Is(res.err, bufio.ErrTooLong) {
					return n, &usageError{msg: fmt.Sprintf("input line %d exceeds %d bytes", n+1, maxLineBytes), err: res.err}
				}
				return n, fmt.Errorf("read input: %w", res.err)
			}
			if err := logger.Info(ctx, res.line, map[string]int{"line": n + 1}); err != nil {
				return n, err
			}
			n++
		}
	}
}

// cmdLs 输出 dir 下 base 的轮转文件。
func cmdLs(w io.Writer, dir, base string) error {
	files, err := xrotate.ListFiles(dir, base)
	if err != nil {
		if errors.Is(err, xrotate.ErrEmptyDir) || errors.Is(err, xrotate.ErrInvalidBaseName) {
			return &usageError{err: err}
		}
		return &exitError{code: 1, err: err}
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return nil
}

// newDiagLogger 创建输出到 w 的诊断日志，经 slog 桥接写成与业务日志相同的 JSON 行。
func newDiagLogger(w io.Writer) *slog.Logger {
	logger, err := xlog.NewLogger(xlog.LevelInfo, "roggerctl", xsink.NewConsole(xsink.WithOutput(w)))
	if err != nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(xlog.NewSlogHandler(logger))
}
