package xlog

import "errors"

var (
	// ErrSerialize 日志条目序列化失败
	ErrSerialize = errors.New("xlog: serialize entry")

	// ErrWrite 日志写入输出目标失败
	ErrWrite = errors.New("xlog: write entry")

	// ErrClosed Logger 已关闭
	ErrClosed = errors.New("xlog: logger closed")

	// ErrAlreadyInitialized 全局 Logger 重复初始化
	ErrAlreadyInitialized = errors.New("xlog: logger already initialized")

	// ErrNotInitialized 全局 Logger 尚未初始化
	ErrNotInitialized = errors.New("xlog: logger not initialized")

	// ErrNilLogger Logger 为 nil
	ErrNilLogger = errors.New("xlog: logger is nil")

	// ErrInvalidLevel 无法识别的日志级别
	ErrInvalidLevel = errors.New("xlog: invalid level")
)
