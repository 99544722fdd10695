package xfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SanitizePath 测试
// =============================================================================

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "绝对路径", input: "/var/log/app.log", want: "/var/log/app.log"},
		{name: "冗余分隔符", input: "/var//log/./app.log", want: "/var/log/app.log"},
		{name: "绝对路径中的 .. 被解析", input: "/var/log/../app.log", want: "/var/app.log"},
		{name: "相对路径", input: "logs/app.log", want: "logs/app.log"},
		{name: "以 .. 开头的合法文件名", input: "logs/..app.log", want: "logs/..app.log"},
		{name: "空路径", input: "", wantErr: ErrEmptyPath},
		{name: "空字节", input: "app\x00.log", wantErr: ErrNullByte},
		{name: "目录路径", input: "/var/log/", wantErr: ErrInvalidPath},
		{name: "反斜杠结尾", input: `logs\`, wantErr: ErrInvalidPath},
		{name: "相对路径穿越", input: "../etc/passwd", wantErr: ErrPathTraversal},
		{name: "当前目录", input: ".", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

// =============================================================================
// ValidateFileName / JoinFile 测试
// =============================================================================

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "普通文件名", input: "app.log"},
		{name: "多个点", input: "app.2024.log"},
		{name: "隐藏文件", input: ".app"},
		{name: "空", input: "", wantErr: ErrEmptyPath},
		{name: "单点", input: ".", wantErr: ErrInvalidName},
		{name: "双点", input: "..", wantErr: ErrInvalidName},
		{name: "斜杠", input: "logs/app.log", wantErr: ErrInvalidName},
		{name: "反斜杠", input: `logs\app.log`, wantErr: ErrInvalidName},
		{name: "空字节", input: "a\x00b", wantErr: ErrNullByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFileName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJoinFile(t *testing.T) {
	got, err := JoinFile("/var/log/", "app.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/log", "app.log"), got)

	_, err = JoinFile("", "app.log")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = JoinFile("/var\x00/log", "app.log")
	assert.ErrorIs(t, err, ErrNullByte)

	_, err = JoinFile("/var/log", "../app.log")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestHasDotDotSegment(t *testing.T) {
	assert.True(t, hasDotDotSegment("a/../b"))
	assert.True(t, hasDotDotSegment(`a\..\b`))
	assert.True(t, hasDotDotSegment(".."))
	assert.False(t, hasDotDotSegment("a/..b/c"))
	assert.False(t, hasDotDotSegment("a/b../c"))
	assert.False(t, hasDotDotSegment(""))
}
