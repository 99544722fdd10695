package xlog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/omeyang/rogger/pkg/observability/xrotate"
	"github.com/omeyang/rogger/pkg/observability/xsink"
)

// Builder 日志配置构建器
//
// 链式调用中第一个出错的步骤决定 Build 返回的错误，后续步骤不再生效。
// 没有添加任何输出目标时默认输出到 stdout。
type Builder struct {
	level   Level
	service string
	sinks   []xsink.Sink
	owned   []xsink.Sink // Builder 自己创建的 sink，Build 失败时负责关闭
	policy  xsink.Policy
	onError func(error)
	err     error
}

// New 创建配置构建器，默认 Info 级别
func New() *Builder {
	return &Builder{level: LevelInfo}
}

// SetLevel 设置最低级别
func (b *Builder) SetLevel(level Level) *Builder {
	if b.err == nil {
		b.level = level
	}
	return b
}

// SetLevelString 通过字符串设置最低级别
func (b *Builder) SetLevelString(s string) *Builder {
	if b.err != nil {
		return b
	}
	level, err := ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	b.level = level
	return b
}

// SetService 设置服务名
func (b *Builder) SetService(name string) *Builder {
	if b.err == nil {
		b.service = name
	}
	return b
}

// SetSink 替换全部输出目标
func (b *Builder) SetSink(s xsink.Sink) *Builder {
	if b.err != nil {
		return b
	}
	if s == nil {
		b.err = xsink.ErrNilSink
		return b
	}
	b.sinks = []xsink.Sink{s}
	return b
}

// AddSink 追加输出目标，多个目标按添加顺序扇出
func (b *Builder) AddSink(s xsink.Sink) *Builder {
	if b.err != nil {
		return b
	}
	if s == nil {
		b.err = xsink.ErrNilSink
		return b
	}
	b.sinks = append(b.sinks, s)
	return b
}

// AddConsole 追加控制台输出（默认 stdout）
func (b *Builder) AddConsole(opts ...xsink.ConsoleOption) *Builder {
	return b.AddSink(xsink.NewConsole(opts...))
}

// AddRotation 追加按行数轮转的文件输出
func (b *Builder) AddRotation(dir, baseName string, maxLines int, opts ...xrotate.LinesOption) *Builder {
	if b.err != nil {
		return b
	}
	r, err := xrotate.NewLines(dir, baseName, maxLines, opts...)
	if err != nil {
		b.err = err
		return b
	}
	b.owned = append(b.owned, r)
	return b.AddSink(r)
}

// AddSizeRotation 追加按大小轮转的文件输出
func (b *Builder) AddSizeRotation(filename string, opts ...xrotate.SizeOption) *Builder {
	if b.err != nil {
		return b
	}
	r, err := xrotate.NewSize(filename, opts...)
	if err != nil {
		b.err = err
		return b
	}
	b.owned = append(b.owned, r)
	return b.AddSink(r)
}

// SetFanOutPolicy 设置多个输出目标的失败策略，默认 xsink.FailFast
func (b *Builder) SetFanOutPolicy(p xsink.Policy) *Builder {
	if b.err == nil {
		b.policy = p
	}
	return b
}

// SetOnError 设置内部错误回调
//
// 序列化或写入失败时同步调用。回调内部再次触发的日志错误不会重入，
// 回调 panic 被隔离。回调在热路径执行，应保持轻量。
func (b *Builder) SetOnError(fn func(error)) *Builder {
	if b.err == nil {
		b.onError = fn
	}
	return b
}

// Build 构建 Logger
//
// 返回值：
//   - *Logger: 日志实例
//   - func() error: 清理函数，关闭所有输出目标，可重复调用
//   - error: 配置错误
func (b *Builder) Build() (*Logger, func() error, error) {
	if b.err != nil {
		errs := []error{b.err}
		for _, s := range b.owned {
			if err := xsink.Close(s); err != nil {
				errs = append(errs, err)
			}
		}
		return nil, nil, errors.Join(errs...)
	}

	var sink xsink.Sink
	switch len(b.sinks) {
	case 0:
		sink = xsink.NewConsole()
	case 1:
		sink = b.sinks[0]
	default:
		sink = xsink.NewFanOut(b.sinks, xsink.WithPolicy(b.policy))
	}

	logger := newLogger(b.level, b.service, sink, b.onError)

	var (
		once sync.Once
		cerr error
	)
	cleanup := func() error {
		once.Do(func() {
			if err := logger.Close(); err != nil {
				cerr = fmt.Errorf("xlog: close sinks: %w", err)
			}
		})
		return cerr
	}
	return logger, cleanup, nil
}
