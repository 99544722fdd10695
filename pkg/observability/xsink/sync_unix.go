//go:build unix

package xsink

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isUnsupportedSync 判断是否为 "该文件类型不支持 fsync" 类错误
func isUnsupportedSync(err error) bool {
	return errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.ENOTTY)
}
