// roggerctl 是 rogger 日志库的命令行工具。
//
// 用法:
//
//	roggerctl <命令> [命令参数]
//
// 命令:
//
//	pipe   从标准输入逐行读取，每行作为一条日志写入配置的输出目标
//	ls     按创建顺序列出按行轮转产生的文件
//
// pipe 参数:
//
//	--config      日志配置文件（YAML/JSON）
//	--level       最低日志级别，覆盖配置文件
//	--service     服务名，覆盖配置文件
//	--dir         按行轮转目录，与 --base 一起启用文件输出
//	--base        按行轮转基础文件名
//	--max-lines   每个文件的最大行数 (默认: 10000)
//	--console     同时输出到标准输出
//	--watch       监视配置文件，level 变更实时生效（需要 --config）
//
// 每行日志的 message 为输入行内容，payload 为 {"line": 行号}。
//
// 退出码:
//
//	0: 输入结束或收到中断信号
//	1: 日志写入失败
//	2: 参数或配置错误
//
// 示例:
//
//	tail -f app.out | roggerctl pipe --dir /var/log/app --base app.log --max-lines 5000
//	roggerctl pipe --config /etc/app/log.yaml --watch < events.txt
//	roggerctl ls --dir /var/log/app --base app.log
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "roggerctl",
		Usage:     "rogger 日志管道与轮转文件工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands:  createCommands(),
		// 由 run() 统一映射退出码，禁止 urfave/cli 直接调用 os.Exit
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := createApp(stdin, stdout, stderr)

	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				fmt.Fprintf(stderr, "错误: %v\n", exitErr.err)
			}
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		if isCLIUsageError(err) {
			fmt.Fprintf(stderr, "参数错误: %v\n", err)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
