package xconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/omeyang/rogger/pkg/observability/xrotate"
)

// FileMode 配置文件中的文件权限。
//
// 字符串按八进制解析（"0644"、"0o644"、"644"）。整数按权限值本身解析：
// YAML 中不加引号的 0644 会被解析器读成整数 420，得到的仍是 0644；
// JSON 中只能写十进制的 420。零值表示使用默认权限。
type FileMode uint32

// ParseFileMode 解析八进制权限字符串，不检查范围。
func ParseFileMode(s string) (FileMode, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0o"), "0O")
	v, err := strconv.ParseUint(t, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an octal number", xrotate.ErrInvalidFileMode, s)
	}
	return FileMode(v), nil
}

// String 返回四位八进制表示，如 "0644"。
func (m FileMode) String() string {
	return fmt.Sprintf("%04o", uint32(m))
}

// Perm 返回对应的 os.FileMode，零值取 [xrotate.DefaultFileMode]，超过 0777 返回错误。
func (m FileMode) Perm() (os.FileMode, error) {
	if m == 0 {
		return xrotate.DefaultFileMode, nil
	}
	if m > 0o777 {
		return 0, fmt.Errorf("%w: %s exceeds 0777", xrotate.ErrInvalidFileMode, m)
	}
	return os.FileMode(m), nil
}

// MarshalText 实现 encoding.TextMarshaler。
func (m FileMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，按八进制解析。
func (m *FileMode) UnmarshalText(text []byte) error {
	v, err := ParseFileMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalJSON 接受八进制字符串或十进制整数。
func (m *FileMode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return m.UnmarshalText([]byte(s))
	}
	v, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("%w: %s is not a non-negative integer", xrotate.ErrInvalidFileMode, data)
	}
	*m = FileMode(v)
	return nil
}

var fileModeType = reflect.TypeOf(FileMode(0))

// fileModeHook 把解析器产出的字符串或数字转换为 FileMode。
//
// 字符串按八进制；整数和整数值的浮点数（JSON 数字）按权限值本身。
func fileModeHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != fileModeType || data == nil {
			return data, nil
		}
		v := reflect.ValueOf(data)
		switch v.Kind() {
		case reflect.String:
			return ParseFileMode(v.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := v.Int()
			if i < 0 || i > math.MaxUint32 {
				return nil, fmt.Errorf("%w: %d out of range", xrotate.ErrInvalidFileMode, i)
			}
			return FileMode(i), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := v.Uint()
			if u > math.MaxUint32 {
				return nil, fmt.Errorf("%w: %d out of range", xrotate.ErrInvalidFileMode, u)
			}
			return FileMode(u), nil
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
				return nil, fmt.Errorf("%w: %v is not a non-negative integer", xrotate.ErrInvalidFileMode, f)
			}
			return FileMode(f), nil
		default:
			return nil, fmt.Errorf("%w: unsupported type %T", xrotate.ErrInvalidFileMode, data)
		}
	}
}

// decoderConfig 返回 LoadBytes 使用的 mapstructure 配置，
// 在 koanf 默认 hook 之前处理 FileMode。
func decoderConfig() *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			fileModeHook(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		WeaklyTypedInput: true,
	}
}
