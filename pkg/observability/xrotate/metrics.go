package xrotate

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// meterName Meter scope 名称，与指标前缀保持一致
	meterName = "xrotate"

	// metricNameRotations 打开新文件次数计数器
	metricNameRotations = "xrotate.rotations"
	// metricNameLines 成功写入行数计数器
	metricNameLines = "xrotate.lines"
	// metricNameErrors 文件操作失败次数计数器
	metricNameErrors = "xrotate.errors"
)

// 错误类型标签值
const (
	errKindOpen  = "open"
	errKindWrite = "write"
	errKindClose = "close"
)

// metrics 按行轮转指标
//
// nil 接收者安全：未配置 MeterProvider 时所有方法为空操作。
type metrics struct {
	rotations metric.Int64Counter
	lines     metric.Int64Counter
	errors    metric.Int64Counter
	base      attribute.KeyValue
}

// newMetrics 创建指标收集器。meterProvider 为 nil 时返回 nil（不收集指标）。
func newMetrics(mp metric.MeterProvider, baseName string) (*metrics, error) {
	if mp == nil {
		return nil, nil
	}
	meter := mp.Meter(meterName)

	m := &metrics{base: attribute.String("base", baseName)}
	var err error
	if m.rotations, err = meter.Int64Counter(metricNameRotations,
		metric.WithDescription("打开新日志文件的次数"), metric.WithUnit("{file}")); err != nil {
		return nil, err
	}
	if m.lines, err = meter.Int64Counter(metricNameLines,
		metric.WithDescription("成功写入的行数"), metric.WithUnit("{line}")); err != nil {
		return nil, err
	}
	if m.errors, err = meter.Int64Counter(metricNameErrors,
		metric.WithDescription("文件打开、写入、关闭失败次数"), metric.WithUnit("{error}")); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metrics) recordRotation() {
	if m == nil {
		return
	}
	m.rotations.Add(context.Background(), 1, metric.WithAttributes(m.base))
}

func (m *metrics) recordLine() {
	if m == nil {
		return
	}
	m.lines.Add(context.Background(), 1, metric.WithAttributes(m.base))
}

func (m *metrics) recordError(kind string) {
	if m == nil {
		return
	}
	m.errors.Add(context.Background(), 1,
		metric.WithAttributes(m.base, attribute.String("kind", kind)))
}
