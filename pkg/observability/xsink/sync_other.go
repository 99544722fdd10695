//go:build !unix

package xsink

// isUnsupportedSync 非 Unix 平台（Windows 控制台句柄等）的 Sync 错误一律视为不支持
func isUnsupportedSync(error) bool {
	return true
}
