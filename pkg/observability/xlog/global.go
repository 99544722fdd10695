package xlog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/omeyang/rogger/pkg/observability/xsink"
)

// =============================================================================
// 全局 Logger
//
// 进程内只允许初始化一次。服务端推荐显式持有 *Logger，
// 全局入口用于脚手架、小工具等简单场景。
// =============================================================================

var (
	globalLogger atomic.Pointer[Logger]
	globalMu     sync.Mutex
)

// Init 初始化全局 Logger
//
// 重复调用 panic（[ErrAlreadyInitialized]），sink 为 nil 时 panic（xsink.ErrNilSink）。
// 两者都属于程序错误，应在启动阶段暴露。
func Init(level Level, service string, sink xsink.Sink) {
	if sink == nil {
		panic(xsink.ErrNilSink)
	}
	InitLogger(newLogger(level, service, sink, nil))
}

// InitLogger 将已构建的 Logger 安装为全局 Logger，约定同 [Init]
func InitLogger(l *Logger) {
	if l == nil {
		panic(ErrNilLogger)
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger.Load() != nil {
		panic(ErrAlreadyInitialized)
	}
	globalLogger.Store(l)
}

// Default 返回全局 Logger，未初始化时 panic（[ErrNotInitialized]）
func Default() *Logger {
	l := globalLogger.Load()
	if l == nil {
		panic(ErrNotInitialized)
	}
	return l
}

// Initialized 返回全局 Logger 是否已初始化
func Initialized() bool {
	return globalLogger.Load() != nil
}

// ResetDefault 清除全局 Logger（仅用于测试），不关闭其 sink
func ResetDefault() {
	globalMu.Lock()
	globalLogger.Store(nil)
	globalMu.Unlock()
}

// =============================================================================
// 便利函数：委托给 Default()
// =============================================================================

// Log 使用全局 Logger 记录日志
func Log(ctx context.Context, level Level, msg string, payload any, opts ...EntryOption) error {
	return Default().Log(ctx, level, msg, payload, opts...)
}

// Debug 使用全局 Logger 记录 Debug 级别日志
func Debug(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return Default().Log(ctx, LevelDebug, msg, payload, opts...)
}

// Info 使用全局 Logger 记录 Info 级别日志
func Info(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return Default().Log(ctx, LevelInfo, msg, payload, opts...)
}

// Warn 使用全局 Logger 记录 Warn 级别日志
func Warn(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return Default().Log(ctx, LevelWarn, msg, payload, opts...)
}

// Error 使用全局 Logger 记录 Error 级别日志
func Error(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return Default().Log(ctx, LevelError, msg, payload, opts...)
}
