package xlog

import (
	"context"
	"log/slog"
	"time"
)

// slogHandler 将 log/slog 记录转换为 Entry 写入 Logger
type slogHandler struct {
	logger *Logger
	attrs  []slog.Attr
	groups []string
}

// NewSlogHandler 返回桥接到 logger 的 slog.Handler
//
// slog 级别归入最接近的标准级别（低于 Info 为 debug，依此类推）；
// 记录的属性组成 payload 对象，WithGroup 产生嵌套对象。没有属性时 payload 为 null。
//
//	slog.SetDefault(slog.New(xlog.NewSlogHandler(logger)))
func NewSlogHandler(logger *Logger) slog.Handler {
	if logger == nil {
		panic(ErrNilLogger)
	}
	return &slogHandler{logger: logger}
}

// Enabled 实现 slog.Handler
func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.Enabled(fromSlog(level))
}

// Handle 实现 slog.Handler
func (h *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	at := r.Time
	if at.IsZero() {
		at = h.logger.now()
	}
	return h.logger.write(ctx, at, fromSlog(r.Level), r.Message, h.payload(r), nil)
}

// payload 合并 handler 属性与记录属性，按分组嵌套
func (h *slogHandler) payload(r slog.Record) any {
	if len(h.attrs) == 0 && r.NumAttrs() == 0 {
		return nil
	}

	root := make(map[string]any)
	for _, a := range h.attrs {
		addAttr(root, a)
	}
	if r.NumAttrs() > 0 {
		leaf := root
		for _, g := range h.groups {
			next, ok := leaf[g].(map[string]any)
			if !ok {
				next = make(map[string]any)
				leaf[g] = next
			}
			leaf = next
		}
		r.Attrs(func(a slog.Attr) bool {
			addAttr(leaf, a)
			return true
		})
	}
	return root
}

// WithAttrs 实现 slog.Handler，分组之后追加的属性归入当前分组
func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	nh := h.clone()
	if len(nh.groups) == 0 {
		nh.attrs = append(nh.attrs, attrs...)
	} else {
		nh.attrs = append(nh.attrs, nestAttrs(nh.groups, attrs))
	}
	return nh
}

// WithGroup 实现 slog.Handler
func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := h.clone()
	nh.groups = append(nh.groups, name)
	return nh
}

func (h *slogHandler) clone() *slogHandler {
	return &slogHandler{
		logger: h.logger,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// nestAttrs 把 attrs 包进 groups 描述的嵌套分组
func nestAttrs(groups []string, attrs []slog.Attr) slog.Attr {
	a := slog.Attr{Key: groups[len(groups)-1], Value: slog.GroupValue(attrs...)}
	for i := len(groups) - 2; i >= 0; i-- {
		a = slog.Attr{Key: groups[i], Value: slog.GroupValue(a)}
	}
	return a
}

// addAttr 将属性写入 m，同名分组合并
func addAttr(m map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() != slog.KindGroup {
		m[a.Key] = attrValue(a.Value)
		return
	}

	attrs := a.Value.Group()
	if len(attrs) == 0 {
		return
	}
	// 空 key 的分组内联到上层
	target := m
	if a.Key != "" {
		sub, ok := m[a.Key].(map[string]any)
		if !ok {
			sub = make(map[string]any, len(attrs))
			m[a.Key] = sub
		}
		target = sub
	}
	for _, ga := range attrs {
		addAttr(target, ga)
	}
}

// attrValue 将 slog.Value 转换为可 JSON 序列化的值
func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	default:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	}
}
