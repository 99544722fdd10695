//go:build unix

package xsink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestIsUnsupportedSync(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"EINVAL", unix.EINVAL, true},
		{"ENOTSUP", unix.ENOTSUP, true},
		{"ENOTTY", unix.ENOTTY, true},
		{"PathError 包装", &fs.PathError{Op: "sync", Path: "/dev/stdout", Err: unix.EINVAL}, true},
		{"多层包装", fmt.Errorf("flush: %w", unix.ENOTTY), true},
		{"EIO", unix.EIO, false},
		{"普通错误", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnsupportedSync(tt.err))
		})
	}
}

func TestConsole_SyncPipeIgnored(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	c := NewConsole(WithOutput(w))
	require.NoError(t, c.Write("x"))
	assert.NoError(t, c.Sync(), "管道不支持 fsync，错误被忽略")
}
