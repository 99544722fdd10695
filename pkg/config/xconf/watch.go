package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/omeyang/rogger/pkg/observability/xlog"
)

// DefaultDebounce 默认防抖时间。
const DefaultDebounce = 100 * time.Millisecond

// WatchCallback 配置文件变更回调。
// err 非 nil 时 cfg 为 nil，表示重载或监视失败，调用方应继续使用旧配置。
type WatchCallback func(cfg *LogConfig, err error)

// WatchOption 监视器配置选项。
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce 设置防抖时间，窗口内的多次变更只触发一次重载。
// 非正值被忽略。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// Watcher 配置文件监视器。
//
// 监视配置文件所在目录而不是文件本身，编辑器先删除再创建、
// 或写临时文件后 rename 的保存方式都能被捕获。
type Watcher struct {
	path     string
	filename string
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	running  bool
	stopped  bool
	timer    *time.Timer
	inflight sync.WaitGroup
}

// Watch 创建配置文件监视器。
//
// 返回的 Watcher 需要调用 Start 或 StartAsync 开始监视，Stop 停止监视。
// 回调在 debounce 定时器的 goroutine 中执行，不得调用 Stop。
func Watch(path string, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}

	options := &watchOptions{debounce: DefaultDebounce}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: failed to create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		return nil, errors.Join(
			fmt.Errorf("xconf: failed to watch directory %s: %w", dir, err),
			fsWatcher.Close(),
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		filename: filepath.Base(path),
		watcher:  fsWatcher,
		callback: callback,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// WatchLevel 监视配置文件，重载成功后把新级别设置到 logger。
//
// 只有 level 字段会热更新，输出目标的变更需要重建 Logger。
// onError 接收重载失败，可以为 nil。
func WatchLevel(path string, logger *xlog.Logger, onError func(error), opts ...WatchOption) (*Watcher, error) {
	if logger == nil {
		return nil, xlog.ErrNilLogger
	}
	return Watch(path, func(cfg *LogConfig, err error) {
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		level, _ := cfg.LevelValue()
		logger.SetLevel(level)
	}, opts...)
}

// Start 启动监视，阻塞直到 Stop。
func (w *Watcher) Start() {
	if !w.markRunning() {
		return
	}
	w.run()
}

// StartAsync 在后台 goroutine 中启动监视，立即返回。
func (w *Watcher) StartAsync() {
	if !w.markRunning() {
		return
	}
	go w.run()
}

func (w *Watcher) markRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running || w.stopped {
		return false
	}
	w.running = true
	return true
}

// Stop 停止监视。
//
// 返回后不会再有回调执行：已触发的回调会被等待完成，未触发的防抖定时器被取消。
// 重复调用返回 nil。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.cancel()
	err := w.watcher.Close()
	if running {
		<-w.done
	}
	w.inflight.Wait()
	return err
}

// Path 返回被监视的配置文件路径。
func (w *Watcher) Path() string { return w.path }

// run 监视循环
func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(nil, fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

// handleEvent 处理文件系统事件，目标文件的 Write/Create/Rename 触发防抖重载
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.filename {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// reload 重新加载配置并通知回调
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		cfg = nil
	}
	w.notify(cfg, err)
}

// notify 在未停止时调用回调，Stop 会等待进行中的回调
func (w *Watcher) notify(cfg *LogConfig, err error) {
	w.mu.Lock()
	if w.stopped || w.callback == nil {
		w.mu.Unlock()
		return
	}
	w.inflight.Add(1)
	w.mu.Unlock()

	defer w.inflight.Done()
	w.callback(cfg, err)
}
