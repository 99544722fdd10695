package xsink

import "io"

//go:generate mockgen -source=sink.go -destination=sink_mock_test.go -package=xsink

// Sink 日志行输出目标
//
// Write 接收一行不含换行符的文本，由实现决定行终止符。
// 返回的错误表示该行未能完整写出。
type Sink interface {
	Write(line string) error
}

// Syncer 可选能力：把已写入的数据刷到持久存储
type Syncer interface {
	Sync() error
}

// Func 函数适配器，让普通函数满足 Sink 接口
type Func func(line string) error

// Write 调用 f 本身
func (f Func) Write(line string) error {
	return f(line)
}

// Close 关闭 s（如果 s 实现了 io.Closer），否则返回 nil
func Close(s Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Sync 刷新 s（如果 s 实现了 Syncer），否则返回 nil
func Sync(s Sink) error {
	if sy, ok := s.(Syncer); ok {
		return sy.Sync()
	}
	return nil
}
