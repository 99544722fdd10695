// Package xfile 提供日志文件落盘所需的路径与目录工具。
//
// # 函数概览
//
//   - [SanitizePath]: 规范化文件路径，拒绝空路径、空字节、相对路径穿越和目录路径
//   - [ValidateFileName]: 校验纯文件名（不含路径分隔符，不是 "." 或 ".."）
//   - [JoinFile]: 将纯文件名拼接到目录下，结果保证位于该目录内
//   - [EnsureDir]: 确保文件的父目录存在
//   - [EnsureDirPath]: 确保目录本身存在
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.JoinFile("/var/log", "../passwd")
//	if errors.Is(err, xfile.ErrInvalidName) {
//	    // 处理非法文件名
//	}
package xfile
