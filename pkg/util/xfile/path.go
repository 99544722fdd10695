package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// isSeparator 同时把 '/' 和 '\' 视为分隔符，跨平台拼接错误时也能识别。
func isSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 以 ".." 开头的合法文件名（如 "..config"）不会被误判。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		if isSeparator(path[i]) {
			i++
			continue
		}
		j := i
		for j < len(path) && !isSeparator(path[j]) {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对文件路径进行格式检查和规范化。
//
// 拒绝空路径、空字节、以分隔符结尾的目录路径以及规范化后仍含 ".." 段的相对路径。
// 绝对路径中的 ".." 由 filepath.Clean 正常解析。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	// 必须在 Clean 之前检查，Clean 会去掉尾部斜杠
	if isSeparator(filename[len(filename)-1]) {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}
	return cleaned, nil
}

// ValidateFileName 校验 name 是纯文件名。
//
// 纯文件名不含 '/' 或 '\'，不含空字节，且不是 "." 或 ".."。
// 轮转文件名 "{name}.{suffix}" 由调用方拼接，因此这里不限制 name 中的 '.'。
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("file name is required: %w", ErrEmptyPath)
	}
	if containsNullByte(name) {
		return fmt.Errorf("file name contains null byte: %w", ErrNullByte)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q contains a path separator: %w", name, ErrInvalidName)
	}
	return nil
}

// JoinFile 将纯文件名 name 拼接到目录 dir 下。
//
// dir 只做 Clean，不要求存在；name 必须通过 [ValidateFileName]。
func JoinFile(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(dir) {
		return "", fmt.Errorf("directory contains null byte: %w", ErrNullByte)
	}
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	return filepath.Join(filepath.Clean(dir), name), nil
}
