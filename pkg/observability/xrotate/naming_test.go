package xrotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		want   int64
		wantOK bool
	}{
		{"标准文件名", "app.log.1700000000000000000", 1700000000000000000, true},
		{"小数字", "app.log.7", 7, true},
		{"无 suffix", "app.log.", 0, false},
		{"无分隔点", "app.log", 0, false},
		{"非数字", "app.log.abc", 0, false},
		{"带符号", "app.log.-1", 0, false},
		{"其他前缀", "other.log.1", 0, false},
		{"溢出", "app.log.99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSuffix("app.log", tt.file)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "app.log.123", FileName("app.log", 123))

	got, ok := ParseSuffix("app.log", FileName("app.log", 1700000000123456789))
	require.True(t, ok)
	assert.Equal(t, int64(1700000000123456789), got)
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"app.log.300",
		"app.log.20",
		"app.log.1000",
		"app.log",
		"app.log.tmp",
		"other.log.1",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "app.log.5"), 0o750))

	files, err := ListFiles(dir, "app.log")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "app.log.20"),
		filepath.Join(dir, "app.log.300"),
		filepath.Join(dir, "app.log.1000"),
	}, files, "按 suffix 数值排序，跳过目录和不匹配的文件")
}

func TestListFiles_Errors(t *testing.T) {
	_, err := ListFiles("", "app.log")
	assert.ErrorIs(t, err, ErrEmptyDir)

	_, err = ListFiles(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrInvalidBaseName)

	_, err = ListFiles(filepath.Join(t.TempDir(), "missing"), "app.log")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
