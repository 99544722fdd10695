package xsink

import (
	"errors"
	"fmt"
)

// Policy 决定 FanOut 在某个成员失败后的行为
type Policy int

const (
	// FailFast 第一个失败的成员终止广播并返回其错误，后续成员收不到该行（默认）
	FailFast Policy = iota

	// BestEffort 继续写入剩余成员，返回所有失败的 errors.Join
	BestEffort
)

// String 返回策略名称
func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case BestEffort:
		return "best_effort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy 解析策略名称（fail_fast / best_effort），空字符串视为 FailFast
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fail_fast", "failfast":
		return FailFast, nil
	case "best_effort", "besteffort":
		return BestEffort, nil
	default:
		return FailFast, fmt.Errorf("xsink: unknown fan-out policy %q", s)
	}
}

// FanOut 把每一行按添加顺序转发给所有成员
//
// FanOut 拥有其成员：Close 会关闭所有实现 io.Closer 的成员。
// Add 与 Write 不能并发调用。
type FanOut struct {
	sinks  []Sink
	policy Policy
}

// FanOutOption FanOut 配置选项
type FanOutOption func(*FanOut)

// WithPolicy 设置失败策略
func WithPolicy(p Policy) FanOutOption {
	return func(f *FanOut) {
		f.policy = p
	}
}

// NewFanOut 创建 FanOut，nil 成员被跳过
func NewFanOut(sinks []Sink, opts ...FanOutOption) *FanOut {
	f := &FanOut{sinks: make([]Sink, 0, len(sinks))}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Add 追加成员
func (f *FanOut) Add(s Sink) error {
	if s == nil {
		return ErrNilSink
	}
	f.sinks = append(f.sinks, s)
	return nil
}

// Len 返回成员数量
func (f *FanOut) Len() int {
	return len(f.sinks)
}

// Policy 返回失败策略
func (f *FanOut) Policy() Policy {
	return f.policy
}

// Write 把 line 依次写给每个成员
//
// 返回的错误包裹成员原始错误，可用 errors.Is 判断。
func (f *FanOut) Write(line string) error {
	var errs []error
	for i, s := range f.sinks {
		if err := s.Write(line); err != nil {
			err = fmt.Errorf("xsink: fan-out member %d: %w", i, err)
			if f.policy == FailFast {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sync 刷新所有实现 Syncer 的成员
func (f *FanOut) Sync() error {
	var errs []error
	for _, s := range f.sinks {
		if err := Sync(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close 关闭所有实现 io.Closer 的成员，不因单个失败而中断
func (f *FanOut) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := Close(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
