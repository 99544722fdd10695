package xrotate

import (
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// DefaultFileMode 按行轮转文件的默认权限
const DefaultFileMode os.FileMode = 0o644

// linesConfig 按行轮转配置
type linesConfig struct {
	fileMode      os.FileMode
	createDir     bool
	now           func() time.Time
	meterProvider metric.MeterProvider
	onError       func(error)
}

// LinesOption 按行轮转配置选项
type LinesOption func(*linesConfig)

// WithFileMode 设置新建日志文件的权限（仅允许 0000~0777）
//
// 已存在的同名文件不会被 chmod。
func WithFileMode(mode os.FileMode) LinesOption {
	return func(c *linesConfig) {
		c.fileMode = mode
	}
}

// WithCreateDir 构造时创建目标目录（权限 0750）
//
// 默认不创建：目录不存在时，第一次 Write 返回文件系统错误。
func WithCreateDir(create bool) LinesOption {
	return func(c *linesConfig) {
		c.createDir = create
	}
}

// WithClock 设置生成文件名 suffix 使用的时钟，nil 被忽略
func WithClock(now func() time.Time) LinesOption {
	return func(c *linesConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider
//
// 不设置时不采集指标。
func WithMeterProvider(mp metric.MeterProvider) LinesOption {
	return func(c *linesConfig) {
		c.meterProvider = mp
	}
}

// WithOnError 设置错误回调
//
// 轮转时关闭旧文件失败不会中断写入，错误只通过此回调通知。
// 回调不得向同一轮转器写入数据，否则会死锁。回调 panic 会被隔离。
func WithOnError(fn func(error)) LinesOption {
	return func(c *linesConfig) {
		c.onError = fn
	}
}

// validateFileMode FileMode 仅允许权限位
func validateFileMode(mode os.FileMode) error {
	if mode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0000~0777) allowed", ErrInvalidFileMode, mode)
	}
	return nil
}

// reportError 通过回调上报内部错误，回调 panic 被 recover 隔离
func reportError(fn func(error), err error) {
	if err != nil && fn != nil {
		defer func() { recover() }() //nolint:errcheck // recover 返回值无需检查
		fn(err)
	}
}
