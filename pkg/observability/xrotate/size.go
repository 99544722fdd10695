package xrotate

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/rogger/pkg/util/xfile"
)

const (
	// DefaultMaxSizeMB 按大小轮转的默认单文件上限（MB）
	DefaultMaxSizeMB = 100

	// MaxSizeMBLimit 单文件大小上限（MB，即 10 GB）
	MaxSizeMBLimit = 10240
)

// sizeConfig 按大小轮转配置
type sizeConfig struct {
	maxSizeMB int
	localTime bool
	fileMode  os.FileMode
	onError   func(error)
}

// SizeOption 按大小轮转配置选项
type SizeOption func(*sizeConfig)

// WithMaxSize 设置单个文件最大大小（MB，1~10240）
func WithMaxSize(mb int) SizeOption {
	return func(c *sizeConfig) {
		c.maxSizeMB = mb
	}
}

// WithLocalTime 备份文件名使用本地时间（默认 UTC）
func WithLocalTime(local bool) SizeOption {
	return func(c *sizeConfig) {
		c.localTime = local
	}
}

// WithSizeFileMode 设置日志文件权限
//
// lumberjack 以 0600 创建文件，设置后在首次写入和轮转后 chmod 到目标权限。
// 0 表示保持 lumberjack 的默认权限。
func WithSizeFileMode(mode os.FileMode) SizeOption {
	return func(c *sizeConfig) {
		c.fileMode = mode
	}
}

// WithSizeOnError 设置错误回调，接收权限调整等内部错误
//
// 回调不得向同一轮转器写入数据。
func WithSizeOnError(fn func(error)) SizeOption {
	return func(c *sizeConfig) {
		c.onError = fn
	}
}

// Size 基于 lumberjack 的按大小轮转写入器
//
// 文件超过 MaxSizeMB 时由 lumberjack 重命名为带时间戳的备份并新建文件。
// 备份从不删除也不压缩。
type Size struct {
	logger   *lumberjack.Logger
	path     string
	fileMode os.FileMode
	onError  func(error)

	closed atomic.Bool

	// 自动轮转由 lumberjack 内部完成，这里按累计写入字节估算，
	// 超过上限后重新检查文件权限，避免每次 Write 都 Stat
	modeMu       sync.Mutex
	modeApplied  atomic.Bool
	maxSizeBytes int64
	written      atomic.Int64

	// 仅用于测试注入，nil 时使用 os 标准库
	statFn  func(string) (os.FileInfo, error)
	chmodFn func(string, os.FileMode) error
}

// NewSize 创建按大小轮转写入器
//
// filename 会被规范化并拒绝路径穿越，父目录不存在时自动创建（权限 0750）。
func NewSize(filename string, opts ...SizeOption) (*Size, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := sizeConfig{maxSizeMB: DefaultMaxSizeMB}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.maxSizeMB < 1 || cfg.maxSizeMB > MaxSizeMBLimit {
		return nil, fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, cfg.maxSizeMB, MaxSizeMBLimit)
	}
	if err := validateFileMode(cfg.fileMode); err != nil {
		return nil, err
	}

	path, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(path); err != nil {
		return nil, err
	}

	return &Size{
		logger: &lumberjack.Logger{
			Filename:  path,
			MaxSize:   cfg.maxSizeMB,
			LocalTime: cfg.localTime,
		},
		path:         path,
		fileMode:     cfg.fileMode,
		onError:      cfg.onError,
		maxSizeBytes: int64(cfg.maxSizeMB) * 1024 * 1024,
	}, nil
}

// Write 写入一行，行尾追加 "\n"
func (s *Size) Write(line string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	n, err := s.logger.Write(buf)
	if err != nil {
		// Close 可能在 logger.Write 期间完成，此时调用方应得到 ErrClosed
		if s.closed.Load() {
			return ErrClosed
		}
		return fmt.Errorf("xrotate: write %s: %w", s.path, err)
	}

	if s.fileMode != 0 {
		check := !s.modeApplied.Load()
		if !check && s.written.Add(int64(n)) >= s.maxSizeBytes {
			check = true
		}
		if check {
			reportError(s.onError, s.applyFileMode())
		}
	}
	return nil
}

// Rotate 立即将当前文件重命名为备份并新建文件
func (s *Size) Rotate() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.logger.Rotate(); err != nil {
		if s.closed.Load() {
			return ErrClosed
		}
		return fmt.Errorf("xrotate: rotate %s: %w", s.path, err)
	}
	if s.fileMode != 0 {
		s.modeApplied.Store(false)
		reportError(s.onError, s.applyFileMode())
	}
	return nil
}

// Close 关闭当前文件。重复调用返回 [ErrClosed]。
func (s *Size) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}
	return s.logger.Close()
}

// Filename 返回规范化后的日志文件路径
func (s *Size) Filename() string { return s.path }

// applyFileMode 将当前文件权限调整为 fileMode
func (s *Size) applyFileMode() error {
	s.modeMu.Lock()
	defer s.modeMu.Unlock()

	stat := s.statFn
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// lumberjack 延迟创建文件
			return nil
		}
		return fmt.Errorf("xrotate: stat %s: %w", s.path, err)
	}

	if info.Mode().Perm() != s.fileMode {
		chmod := s.chmodFn
		if chmod == nil {
			chmod = os.Chmod
		}
		//#nosec G302 -- 权限由调用方配置
		if err := chmod(s.path, s.fileMode); err != nil {
			return fmt.Errorf("xrotate: chmod %s: %w", s.path, err)
		}
	}

	s.modeApplied.Store(true)
	s.written.Store(0)
	return nil
}
