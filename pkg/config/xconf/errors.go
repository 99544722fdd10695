package xconf

import "errors"

// 配置加载、解析和校验相关错误。
var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示配置加载失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示配置解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrInvalidConfig 表示配置内容不合法。
	ErrInvalidConfig = errors.New("xconf: invalid config")

	// ErrNoOutput 表示没有启用任何输出目标。
	ErrNoOutput = errors.New("xconf: no output enabled")
)
