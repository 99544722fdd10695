package xsink

import "errors"

var (
	// ErrNilSink 传入了 nil Sink
	ErrNilSink = errors.New("xsink: sink is nil")

	// ErrNilWriter 传入了 nil io.Writer
	ErrNilWriter = errors.New("xsink: writer is nil")

	// ErrShortWrite 底层 Writer 写入字节数少于一整行
	ErrShortWrite = errors.New("xsink: short write")
)
