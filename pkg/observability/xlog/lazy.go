package xlog

import "encoding/json"

// lazyPayload 延迟求值的负载，在序列化时才调用 fn
type lazyPayload struct {
	fn func() any
}

// MarshalJSON 实现 json.Marshaler
func (p lazyPayload) MarshalJSON() ([]byte, error) {
	if p.fn == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.fn())
}

// Lazy 返回延迟求值的负载
//
// fn 只在条目实际输出时调用，级别被过滤的日志不会触发计算：
//
//	logger.Debug(ctx, "cache stats", xlog.Lazy(func() any {
//	    return cache.Stats()
//	}))
func Lazy(fn func() any) any {
	return lazyPayload{fn: fn}
}
