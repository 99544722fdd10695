package xrotate

import "errors"

// 配置校验错误
var (
	// ErrEmptyDir 目标目录为空
	ErrEmptyDir = errors.New("xrotate: directory is required")

	// ErrInvalidBaseName 基础文件名为空或不是纯文件名
	ErrInvalidBaseName = errors.New("xrotate: invalid base filename")

	// ErrInvalidMaxLines 每个文件的最大行数必须 >= 1
	ErrInvalidMaxLines = errors.New("xrotate: invalid max lines")

	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidMaxSize MaxSizeMB 值无效（必须在 1~10240 范围内）
	ErrInvalidMaxSize = errors.New("xrotate: invalid MaxSizeMB")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xrotate: invalid FileMode")

	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrotate: rotator is closed")
)
