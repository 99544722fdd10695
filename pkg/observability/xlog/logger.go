package xlog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/omeyang/rogger/pkg/observability/xsink"
)

// Logger 结构化 JSON 日志记录器
//
// 每条日志序列化为一行 JSON，在互斥锁保护下写入 sink，
// 条目按获取锁的顺序落地。级别可在运行时动态调整。
type Logger struct {
	service  string
	levelVar *slog.LevelVar
	sink     xsink.Sink
	now      func() time.Time

	mu sync.Mutex

	onError        func(error)
	errorCount     atomic.Uint64
	inErrorHandler atomic.Bool
	closed         atomic.Bool
}

// NewLogger 使用给定级别、服务名和输出目标创建 Logger
//
// 需要多个输出目标或错误回调时使用 [New] 构建。
func NewLogger(level Level, service string, sink xsink.Sink) (*Logger, error) {
	if sink == nil {
		return nil, xsink.ErrNilSink
	}
	return newLogger(level, service, sink, nil), nil
}

func newLogger(level Level, service string, sink xsink.Sink, onError func(error)) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(slog.Level(level))
	return &Logger{
		service:  service,
		levelVar: lv,
		sink:     sink,
		now:      time.Now,
		onError:  onError,
	}
}

// Log 记录一条日志
//
// level 低于最低级别时直接返回 nil，不构造条目也不访问 sink。
// ctx 仅用于提取 trace_id/span_id，可以为 nil。
//
// 序列化失败返回包装 [ErrSerialize] 的错误；写入失败返回同时包装 [ErrWrite]
// 和 sink 原始错误的错误。两种失败都会计入 [Logger.ErrorCount] 并通知 OnError 回调。
// [Logger.Close] 之后无论哪种 sink 都返回 [ErrClosed]，不访问 sink。
func (l *Logger) Log(ctx context.Context, level Level, msg string, payload any, opts ...EntryOption) error {
	if l.closed.Load() {
		return ErrClosed
	}
	if !l.Enabled(level) {
		return nil
	}
	return l.write(ctx, l.now(), level, msg, payload, opts)
}

// write 构造、序列化并写出条目
func (l *Logger) write(ctx context.Context, at time.Time, level Level, msg string, payload any, opts []EntryOption) error {
	e := newEntryAt(at, l.service, level, msg, payload, opts)
	e.TraceID, e.SpanID = traceIDs(ctx)

	data, err := json.Marshal(e)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSerialize, err)
		l.handleError(err)
		return err
	}

	l.mu.Lock()
	if l.closed.Load() {
		l.mu.Unlock()
		return ErrClosed
	}
	err = l.sink.Write(string(data))
	l.mu.Unlock()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrWrite, err)
		l.handleError(err)
		return err
	}
	return nil
}

// handleError 计数并通知 OnError 回调
//
// 回调内再次触发的日志错误不会重入回调，回调 panic 被隔离并计入错误数。
func (l *Logger) handleError(err error) {
	l.errorCount.Add(1)
	if l.onError == nil {
		return
	}
	if !l.inErrorHandler.CompareAndSwap(false, true) {
		return
	}
	defer l.inErrorHandler.Store(false)

	defer func() {
		if r := recover(); r != nil {
			l.errorCount.Add(1)
		}
	}()
	l.onError(err)
}

// Debug 记录 Debug 级别日志
func (l *Logger) Debug(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return l.Log(ctx, LevelDebug, msg, payload, opts...)
}

// Info 记录 Info 级别日志
func (l *Logger) Info(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return l.Log(ctx, LevelInfo, msg, payload, opts...)
}

// Warn 记录 Warn 级别日志
func (l *Logger) Warn(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return l.Log(ctx, LevelWarn, msg, payload, opts...)
}

// Error 记录 Error 级别日志
func (l *Logger) Error(ctx context.Context, msg string, payload any, opts ...EntryOption) error {
	return l.Log(ctx, LevelError, msg, payload, opts...)
}

// SetLevel 动态设置最低级别
func (l *Logger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

// GetLevel 返回当前最低级别
func (l *Logger) GetLevel() Level {
	return Level(l.levelVar.Level())
}

// Enabled 判断 level 是否会被输出
func (l *Logger) Enabled(level Level) bool {
	return level >= l.GetLevel()
}

// Service 返回服务名
func (l *Logger) Service() string { return l.service }

// ErrorCount 返回累计的内部错误数（序列化失败、写入失败、回调 panic）
func (l *Logger) ErrorCount() uint64 {
	return l.errorCount.Load()
}

// Sync 刷新 sink 缓冲（sink 支持时）
func (l *Logger) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return xsink.Sync(l.sink)
}

// Close 关闭 sink（sink 实现 io.Closer 时），幂等
//
// 关闭后的 Log 返回 [ErrClosed]；已持有锁的写入先完成。
func (l *Logger) Close() error {
	if l.closed.Swap(true) {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return xsink.Close(l.sink)
}
