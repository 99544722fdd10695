package xlog

import (
	"time"
)

// Entry 一条结构化日志
//
// JSON 字段顺序固定：service_name, level, message, timestamp, duration, payload,
// trace_id, span_id。duration 以秒为单位的浮点数，缺省时省略；
// payload 为 nil 时输出 null。
type Entry struct {
	ServiceName string    `json:"service_name"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Duration    *float64  `json:"duration,omitempty"`
	Payload     any       `json:"payload"`
	TraceID     string    `json:"trace_id,omitempty"`
	SpanID      string    `json:"span_id,omitempty"`
}

// EntryOption 日志条目选项
type EntryOption func(*Entry)

// WithDuration 为条目附加耗时，序列化为秒
func WithDuration(d time.Duration) EntryOption {
	return func(e *Entry) {
		secs := d.Seconds()
		e.Duration = &secs
	}
}

// NewEntry 创建日志条目，时间戳取当前 UTC 时间
func NewEntry(service string, level Level, msg string, payload any, opts ...EntryOption) Entry {
	return newEntryAt(time.Now(), service, level, msg, payload, opts)
}

func newEntryAt(at time.Time, service string, level Level, msg string, payload any, opts []EntryOption) Entry {
	e := Entry{
		ServiceName: service,
		Level:       level,
		Message:     msg,
		Timestamp:   at.UTC(),
		Payload:     payload,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&e)
		}
	}
	return e
}

// Elapsed 返回条目携带的耗时，未设置时第二个返回值为 false
func (e Entry) Elapsed() (time.Duration, bool) {
	if e.Duration == nil {
		return 0, false
	}
	return time.Duration(*e.Duration * float64(time.Second)), true
}
