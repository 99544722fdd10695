// Package xlog 提供带级别过滤的结构化 JSON 日志。
//
// 每条日志是一个 [Entry]，序列化为单行 JSON 后写入 xsink.Sink：
//
//	{"service_name":"api","level":"info","message":"started","timestamp":"2024-01-02T03:04:05.123456789Z","payload":{"port":8080}}
//
// duration（秒，浮点数）仅在通过 [WithDuration] 提供时出现；
// context 中携带 OpenTelemetry span 时追加 trace_id 和 span_id。
//
// # 显式 Logger
//
// 推荐通过 [New] 构建并显式持有 *Logger：
//
//	logger, cleanup, err := xlog.New().
//	    SetLevel(xlog.LevelInfo).
//	    SetService("api").
//	    AddConsole().
//	    AddRotation("/var/log/api", "api.log", 10000).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	logger.Info(ctx, "started", map[string]any{"port": 8080})
//
// 多个输出目标通过 xsink.FanOut 按添加顺序写入，默认遇错即停（FailFast）。
//
// # 全局 Logger
//
// [Init] / [InitLogger] 在进程内只能调用一次，重复调用 panic；
// 初始化前调用 [Default] 或包级 Log/Debug/Info/Warn/Error 也会 panic。
//
// # 错误处理
//
// 日志方法返回错误而不是 panic：序列化失败包装 [ErrSerialize]，
// 写入失败包装 [ErrWrite] 和 sink 的原始错误。调用方可以忽略返回值，
// 错误同时计入 [Logger.ErrorCount] 并通知 [Builder.SetOnError] 设置的回调。
//
// # log/slog 集成
//
// [NewSlogHandler] 把 slog 记录转换为 Entry，属性成为 payload 对象。
package xlog
