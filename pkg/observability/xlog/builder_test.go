package xlog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/rogger/pkg/observability/xrotate"
	"github.com/omeyang/rogger/pkg/observability/xsink"
)

func TestBuilder_Defaults(t *testing.T) {
	l, cleanup, err := New().Build()
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, LevelInfo, l.GetLevel())
	assert.Empty(t, l.Service())
	_, ok := l.sink.(*xsink.Console)
	assert.True(t, ok, "默认输出到控制台")
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	_, _, err := New().
		SetLevelString("verbose").
		AddRotation("", "app.log", 10).
		Build()
	require.ErrorIs(t, err, ErrInvalidLevel)
	assert.NotErrorIs(t, err, xrotate.ErrEmptyDir)
}

func TestBuilder_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		build   func() *Builder
		wantErr error
	}{
		{"未知级别", func() *Builder { return New().SetLevelString("loud") }, ErrInvalidLevel},
		{"nil sink", func() *Builder { return New().SetSink(nil) }, xsink.ErrNilSink},
		{"追加 nil sink", func() *Builder { return New().AddSink(nil) }, xsink.ErrNilSink},
		{"轮转目录为空", func() *Builder { return New().AddRotation("", "a.log", 10) }, xrotate.ErrEmptyDir},
		{"轮转行数非法", func() *Builder { return New().AddRotation(dir, "a.log", 0) }, xrotate.ErrInvalidMaxLines},
		{"大小轮转参数非法", func() *Builder {
			return New().AddSizeRotation(filepath.Join(dir, "s.log"), xrotate.WithMaxSize(0))
		}, xrotate.ErrInvalidMaxSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, cleanup, err := tt.build().Build()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, l)
			assert.Nil(t, cleanup)
		})
	}
}

func TestBuilder_FanOutOrder(t *testing.T) {
	var order []string
	record := func(name string) xsink.Sink {
		return xsink.Func(func(string) error {
			order = append(order, name)
			return nil
		})
	}
	a, b := record("a"), record("b")

	l, cleanup, err := New().SetService("svc").AddSink(a).AddSink(b).Build()
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, l.Info(context.Background(), "x", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestBuilder_FanOutPolicy(t *testing.T) {
	failing := xsink.Func(func(string) error { return errors.New("a failed") })

	tests := []struct {
		name     string
		policy   xsink.Policy
		wantSeen int
	}{
		{"遇错即停", xsink.FailFast, 0},
		{"尽力写入", xsink.BestEffort, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := xsink.NewMemory()
			l, cleanup, err := New().AddSink(failing).AddSink(mem).SetFanOutPolicy(tt.policy).Build()
			require.NoError(t, err)
			defer cleanup()

			assert.ErrorIs(t, l.Info(context.Background(), "x", nil), ErrWrite)
			assert.Equal(t, tt.wantSeen, mem.Len())
		})
	}
}

func TestBuilder_SetSinkReplaces(t *testing.T) {
	first, second := xsink.NewMemory(), xsink.NewMemory()
	l, cleanup, err := New().AddSink(first).SetSink(second).Build()
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, l.Info(context.Background(), "x", nil))
	assert.Equal(t, 0, first.Len())
	assert.Equal(t, 1, second.Len())
}

func TestBuilder_ConsoleAndRotation(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	l, cleanup, err := New().
		SetLevel(LevelDebug).
		SetService("api").
		AddConsole(xsink.WithOutput(&console)).
		AddRotation(dir, "api.log", 2).
		AddSizeRotation(filepath.Join(dir, "size", "api.log")).
		Build()
	require.NoError(t, err)

	ctx := context.Background()
	for _, msg := range []string{"one", "two", "three"} {
		require.NoError(t, l.Debug(ctx, msg, nil))
	}
	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "cleanup 可重复调用")

	assert.Equal(t, 3, bytes.Count(console.Bytes(), []byte("\n")))

	files, err := xrotate.ListFiles(dir, "api.log")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	data, err := os.ReadFile(filepath.Join(dir, "size", "api.log"))
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(data, []byte("\n")))
}

func TestBuilder_BuildFailureClosesOwnedSinks(t *testing.T) {
	dir := t.TempDir()
	b := New().AddRotation(dir, "a.log", 10)
	require.Len(t, b.owned, 1)
	owned := b.owned[0].(*xrotate.Lines)

	_, _, err := b.SetSink(nil).Build()
	require.ErrorIs(t, err, xsink.ErrNilSink)
	assert.ErrorIs(t, owned.Write("x"), xrotate.ErrClosed)
}
