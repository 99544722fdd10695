package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// FileName 返回 "{baseName}.{suffix}" 形式的轮转文件名
func FileName(baseName string, suffix int64) string {
	return baseName + "." + strconv.FormatInt(suffix, 10)
}

// ParseSuffix 从轮转文件名中解析 suffix
//
// name 必须是 "{baseName}.{digits}"，否则返回 false。
func ParseSuffix(baseName, name string) (int64, bool) {
	rest, ok := strings.CutPrefix(name, baseName+".")
	if !ok || rest == "" {
		return 0, false
	}
	for i := range len(rest) {
		if rest[i] < '0' || rest[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ListFiles 列出 dir 下属于 baseName 的轮转文件，按 suffix 升序（即创建顺序）返回完整路径
//
// 目录不存在时返回文件系统错误。子目录和不匹配的文件被忽略。
func ListFiles(dir, baseName string) ([]string, error) {
	if dir == "" {
		return nil, ErrEmptyDir
	}
	if baseName == "" {
		return nil, ErrInvalidBaseName
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("xrotate: list %s: %w", dir, err)
	}

	type rotated struct {
		suffix int64
		name   string
	}
	var found []rotated
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if suffix, ok := ParseSuffix(baseName, e.Name()); ok {
			found = append(found, rotated{suffix: suffix, name: e.Name()})
		}
	}
	slices.SortFunc(found, func(a, b rotated) int {
		switch {
		case a.suffix < b.suffix:
			return -1
		case a.suffix > b.suffix:
			return 1
		default:
			return strings.Compare(a.name, b.name)
		}
	})

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = filepath.Join(dir, f.name)
	}
	return paths, nil
}
