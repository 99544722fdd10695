package xrotate

import (
	"testing"
)

func FuzzParseSuffix(f *testing.F) {
	f.Add("app.log", "app.log.1700000000000000000")
	f.Add("app.log", "app.log.")
	f.Add("a", "a.b.1")
	f.Add("", ".1")

	f.Fuzz(func(t *testing.T, base, name string) {
		suffix, ok := ParseSuffix(base, name)
		if !ok {
			return
		}
		if suffix < 0 {
			t.Fatalf("negative suffix %d from %q", suffix, name)
		}
		// 前导零的名字解析后不能原样还原，其余必须往返一致
		if got := FileName(base, suffix); got != name && name[len(base)+1] != '0' {
			t.Fatalf("FileName(%q, %d) = %q, want %q", base, suffix, got, name)
		}
	})
}
