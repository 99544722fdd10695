package xsink

import (
	"fmt"
	"io"
)

// WriterSink 把 io.Writer 适配为 Sink
//
// 每行追加 "\n" 后通过一次 Write 调用写出，保证行不会被拆成多次写入。
// 若底层 Writer 实现 io.Closer 或 Syncer，WriterSink 会透传这些能力。
type WriterSink struct {
	w io.Writer
}

// NewWriterSink 创建 WriterSink
func NewWriterSink(w io.Writer) (*WriterSink, error) {
	if w == nil {
		return nil, ErrNilWriter
	}
	return &WriterSink{w: w}, nil
}

// Write 写入一行
func (s *WriterSink) Write(line string) error {
	return writeLine(s.w, line)
}

// Close 关闭底层 Writer（若支持）
func (s *WriterSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Sync 刷新底层 Writer（若支持）
func (s *WriterSink) Sync() error {
	if sy, ok := s.w.(Syncer); ok {
		return sy.Sync()
	}
	return nil
}

// writeLine 以单次 Write 写出 line+"\n"
func writeLine(w io.Writer, line string) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, len(buf))
	}
	return nil
}
