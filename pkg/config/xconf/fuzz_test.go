package xconf

import (
	"errors"
	"testing"
)

func FuzzLoadBytes(f *testing.F) {
	f.Add([]byte("level: info\n"))
	f.Add([]byte("rotation: {enabled: true, dir: /tmp, base_filename: a.log, max_lines: 3}\n"))
	f.Add([]byte("rotation: {enabled: true, dir: /tmp, base_filename: a.log, max_lines: 3, file_mode: 0640}\n"))
	f.Add([]byte("level: [\n"))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := LoadBytes(data, FormatYAML)
		if err != nil {
			if !errors.Is(err, ErrParseFailed) && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		// 加载成功的配置必须通过校验
		if err := cfg.Validate(); err != nil {
			t.Fatalf("loaded config fails validation: %v", err)
		}
	})
}
