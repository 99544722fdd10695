package xfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirPerm 默认目录权限（所有者 rwx，组 r-x，其他无权限）。
const DefaultDirPerm = 0750

// EnsureDir 确保文件 filename 的父目录存在，使用 [DefaultDirPerm]。
// 目录已存在时不报错，也不修改其权限。
func EnsureDir(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if containsNullByte(filename) {
		return fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, DefaultDirPerm)
}

// EnsureDirPath 确保目录 dir 本身存在，使用 [DefaultDirPerm]。
//
// dir 已存在但不是目录时返回 [ErrNotDir]。
func EnsureDirPath(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory is required: %w", ErrEmptyPath)
	}
	if containsNullByte(dir) {
		return fmt.Errorf("directory contains null byte: %w", ErrNullByte)
	}
	if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
		info, statErr := os.Stat(dir)
		if statErr == nil && !info.IsDir() {
			return fmt.Errorf("%s: %w", dir, ErrNotDir)
		}
		return err
	}
	return nil
}
