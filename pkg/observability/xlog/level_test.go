package xlog

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_Order(t *testing.T) {
	assert.Less(t, LevelDebug, LevelInfo)
	assert.Less(t, LevelInfo, LevelWarn)
	assert.Less(t, LevelWarn, LevelError)
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelInfo + 2, "info+2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{"小写", "debug", LevelDebug, false},
		{"大写", "INFO", LevelInfo, false},
		{"warning 别名", "Warning", LevelWarn, false},
		{"带空白", "  error\n", LevelError, false},
		{"未知", "fatal", LevelInfo, true},
		{"空", "", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	type cfg struct {
		Level Level `json:"level"`
	}
	data, err := json.Marshal(cfg{Level: LevelWarn})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"warn"}`, string(data))

	var got cfg
	require.NoError(t, json.Unmarshal([]byte(`{"level":"WARNING"}`), &got))
	assert.Equal(t, LevelWarn, got.Level)

	assert.Error(t, json.Unmarshal([]byte(`{"level":"loud"}`), &got))
}

func TestFromSlog(t *testing.T) {
	assert.Equal(t, LevelDebug, fromSlog(slog.LevelDebug-4))
	assert.Equal(t, LevelDebug, fromSlog(slog.LevelDebug))
	assert.Equal(t, LevelInfo, fromSlog(slog.LevelInfo+1))
	assert.Equal(t, LevelWarn, fromSlog(slog.LevelWarn))
	assert.Equal(t, LevelError, fromSlog(slog.LevelError+8))
}
