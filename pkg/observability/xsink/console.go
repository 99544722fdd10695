package xsink

import (
	"io"
	"os"
)

// Console 控制台输出
//
// 默认写 os.Stdout。只有输出流本身失败（如管道已关闭）时才返回错误。
type Console struct {
	out io.Writer
}

// ConsoleOption Console 配置选项
type ConsoleOption func(*Console)

// WithOutput 设置输出流（如 os.Stderr 或测试用 bytes.Buffer），nil 被忽略
func WithOutput(w io.Writer) ConsoleOption {
	return func(c *Console) {
		if w != nil {
			c.out = w
		}
	}
}

// NewConsole 创建 Console
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{out: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Write 写入一行
func (c *Console) Write(line string) error {
	return writeLine(c.out, line)
}

// Sync 刷新输出流；终端和管道不支持 fsync，这类错误被忽略
func (c *Console) Sync() error {
	if f, ok := c.out.(*os.File); ok {
		if err := f.Sync(); err != nil && !isUnsupportedSync(err) {
			return err
		}
	}
	return nil
}
