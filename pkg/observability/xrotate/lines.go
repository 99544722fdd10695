package xrotate

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/omeyang/rogger/pkg/util/xfile"
)

// fileHandle 轮转器持有的文件句柄，*os.File 满足此接口
type fileHandle interface {
	io.Writer
	io.Closer
}

// openFunc 打开文件的函数签名，测试可替换以注入故障
type openFunc func(name string, flag int, perm os.FileMode) (fileHandle, error)

// openFile 默认实现，避免把 nil *os.File 装进非 nil 接口
func openFile(name string, flag int, perm os.FileMode) (fileHandle, error) {
	f, err := os.OpenFile(name, flag, perm) //nolint:gosec // 路径由构造参数校验
	if err != nil {
		return nil, err
	}
	return f, nil
}

// openFlags 追加打开，从不截断同名文件
const openFlags = os.O_CREATE | os.O_APPEND | os.O_WRONLY

// Lines 按行数轮转的写入器
//
// 每个文件最多 maxLines 行。写满后下一次 Write 关闭当前文件，
// 在同一目录下打开 "{baseName}.{suffix}" 新文件。
type Lines struct {
	dir      string
	baseName string
	maxLines int

	fileMode os.FileMode
	now      func() time.Time
	open     openFunc
	onError  func(error)
	metrics  *metrics

	mu         sync.Mutex
	file       fileHandle
	path       string
	lineCount  int
	lastSuffix int64
	closed     bool
}

// NewLines 创建按行轮转写入器
//
// dir 为目标目录；baseName 为不含路径分隔符的文件名前缀；maxLines >= 1。
// 构造时不打开文件，第一次 Write 才创建第一个文件。
// 默认不检查目录是否存在，可通过 [WithCreateDir] 在构造时创建目录。
func NewLines(dir, baseName string, maxLines int, opts ...LinesOption) (*Lines, error) {
	cfg := linesConfig{
		fileMode: DefaultFileMode,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if dir == "" {
		return nil, ErrEmptyDir
	}
	if err := xfile.ValidateFileName(baseName); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidBaseName, baseName, err)
	}
	if maxLines < 1 {
		return nil, fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidMaxLines, maxLines)
	}
	if err := validateFileMode(cfg.fileMode); err != nil {
		return nil, err
	}
	if cfg.createDir {
		if err := xfile.EnsureDirPath(dir); err != nil {
			return nil, fmt.Errorf("xrotate: create directory: %w", err)
		}
	}

	m, err := newMetrics(cfg.meterProvider, baseName)
	if err != nil {
		return nil, fmt.Errorf("xrotate: init metrics: %w", err)
	}

	return &Lines{
		dir:      dir,
		baseName: baseName,
		maxLines: maxLines,
		fileMode: cfg.fileMode,
		now:      cfg.now,
		open:     openFile,
		onError:  cfg.onError,
		metrics:  m,
	}, nil
}

// Write 写入一行，行尾追加 "\n"
//
// 没有打开的文件或当前文件已满 maxLines 行时，先执行轮转。
// line 与换行符在一次系统写调用中写出，写入成功后行计数加一。
// line 本身不应包含换行符，否则物理行数会多于计数。
//
// 打开新文件失败时返回错误，写入器不持有文件，下一次 Write 重试。
// 写入失败时返回错误，当前文件和行计数保持不变。
func (l *Lines) Write(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	if l.file == nil || l.lineCount >= l.maxLines {
		if err := l.rotateLocked(); err != nil {
			return err
		}
	}

	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	n, err := l.file.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		l.metrics.recordError(errKindWrite)
		return fmt.Errorf("xrotate: write %s: %w", l.path, err)
	}
	l.lineCount++
	l.metrics.recordLine()
	return nil
}

// Rotate 立即关闭当前文件并打开新文件，不论当前文件是否写满
func (l *Lines) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	return l.rotateLocked()
}

// rotateLocked 关闭当前文件，打开下一个文件。调用方必须持有 mu。
//
// 关闭旧文件失败不阻止轮转，错误通过 onError 上报。
func (l *Lines) rotateLocked() error {
	if err := l.closeFileLocked(); err != nil {
		reportError(l.onError, err)
	}

	path, err := xfile.JoinFile(l.dir, FileName(l.baseName, l.nextSuffix()))
	if err != nil {
		l.metrics.recordError(errKindOpen)
		return fmt.Errorf("xrotate: %w", err)
	}
	f, err := l.open(path, openFlags, l.fileMode)
	if err != nil {
		l.metrics.recordError(errKindOpen)
		return fmt.Errorf("xrotate: open %s: %w", path, err)
	}

	l.file = f
	l.path = path
	l.lineCount = 0
	l.metrics.recordRotation()
	return nil
}

// nextSuffix 返回严格递增的纳秒 suffix。调用方必须持有 mu。
//
// 时钟回拨或两次轮转落在同一纳秒时，使用上一次 suffix + 1。
func (l *Lines) nextSuffix() int64 {
	s := l.now().UnixNano()
	if s <= l.lastSuffix {
		s = l.lastSuffix + 1
	}
	l.lastSuffix = s
	return s
}

// closeFileLocked 关闭并清空当前文件。调用方必须持有 mu。
func (l *Lines) closeFileLocked() error {
	if l.file == nil {
		return nil
	}
	f, path := l.file, l.path
	l.file = nil
	l.path = ""
	l.lineCount = 0
	if err := f.Close(); err != nil {
		l.metrics.recordError(errKindClose)
		return fmt.Errorf("xrotate: close %s: %w", path, err)
	}
	return nil
}

// Sync 将当前文件刷入磁盘。没有打开的文件时为空操作。
func (l *Lines) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	s, ok := l.file.(interface{ Sync() error })
	if !ok {
		return nil
	}
	if err := s.Sync(); err != nil {
		return fmt.Errorf("xrotate: sync %s: %w", l.path, err)
	}
	return nil
}

// Close 关闭当前文件。重复调用返回 [ErrClosed]。
func (l *Lines) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	l.closed = true
	return l.closeFileLocked()
}

// Current 返回当前文件的完整路径，没有打开的文件时返回空字符串
func (l *Lines) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

// LineCount 返回当前文件已写入的行数
func (l *Lines) LineCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lineCount
}

// Dir 返回目标目录
func (l *Lines) Dir() string { return l.dir }

// BaseName 返回基础文件名
func (l *Lines) BaseName() string { return l.baseName }

// MaxLines 返回每个文件的最大行数
func (l *Lines) MaxLines() int { return l.maxLines }

