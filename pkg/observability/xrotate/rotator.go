package xrotate

import "github.com/omeyang/rogger/pkg/observability/xsink"

// 编译时断言
var (
	_ Rotator = (*Lines)(nil)
	_ Rotator = (*Size)(nil)
)

// Rotator 日志轮转器接口
//
// 扩展新实现时，必须满足以下约定：
//   - Write 写入一整行（实现负责追加行终止符），并发安全
//   - Close 后调用 Write 或 Rotate 返回 [ErrClosed]，重复 Close 也返回 [ErrClosed]
//   - Rotate 可以在任意时刻调用
type Rotator interface {
	xsink.Sink

	// Rotate 立即关闭当前文件并打开下一个文件
	Rotate() error

	// Close 关闭当前文件，释放资源
	Close() error
}
