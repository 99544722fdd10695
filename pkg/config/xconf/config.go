package xconf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/omeyang/rogger/pkg/observability/xlog"
	"github.com/omeyang/rogger/pkg/observability/xrotate"
	"github.com/omeyang/rogger/pkg/observability/xsink"
	"github.com/omeyang/rogger/pkg/util/xfile"
)

// 控制台输出流名称。
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// 默认值。
const (
	DefaultMaxLines = 10000

	DefaultFileMode FileMode = 0o644
)

// LogConfig 日志配置文件结构。
//
//	level: info
//	service_name: api
//	fanout_policy: fail_fast
//	console:
//	  enabled: true
//	  stream: stdout
//	rotation:
//	  enabled: true
//	  dir: /var/log/api
//	  base_filename: api.log
//	  max_lines: 10000
//	  file_mode: 0644
//	  create_dir: true
//	size_rotation:
//	  enabled: false
//	  filename: /var/log/api/size.log
//	  max_size_mb: 100
//
// file_mode 的取值规则见 [FileMode]。
type LogConfig struct {
	Level        string             `koanf:"level" json:"level"`
	ServiceName  string             `koanf:"service_name" json:"service_name"`
	FanOutPolicy string             `koanf:"fanout_policy" json:"fanout_policy"`
	Console      ConsoleConfig      `koanf:"console" json:"console"`
	Rotation     RotationConfig     `koanf:"rotation" json:"rotation"`
	SizeRotation SizeRotationConfig `koanf:"size_rotation" json:"size_rotation"`
}

// ConsoleConfig 控制台输出配置。
type ConsoleConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled"`
	Stream  string `koanf:"stream" json:"stream"`
}

// RotationConfig 按行数轮转配置。
type RotationConfig struct {
	Enabled      bool     `koanf:"enabled" json:"enabled"`
	Dir          string   `koanf:"dir" json:"dir"`
	BaseFilename string   `koanf:"base_filename" json:"base_filename"`
	MaxLines     int      `koanf:"max_lines" json:"max_lines"`
	FileMode     FileMode `koanf:"file_mode" json:"file_mode"`
	CreateDir    bool     `koanf:"create_dir" json:"create_dir"`
}

// SizeRotationConfig 按大小轮转配置。
type SizeRotationConfig struct {
	Enabled   bool   `koanf:"enabled" json:"enabled"`
	Filename  string `koanf:"filename" json:"filename"`
	MaxSizeMB int    `koanf:"max_size_mb" json:"max_size_mb"`
	LocalTime bool   `koanf:"local_time" json:"local_time"`
}

// Default 返回默认配置：info 级别，仅输出到 stdout。
func Default() *LogConfig {
	return &LogConfig{
		Level:        "info",
		FanOutPolicy: xsink.FailFast.String(),
		Console: ConsoleConfig{
			Enabled: true,
			Stream:  StreamStdout,
		},
		Rotation: RotationConfig{
			MaxLines: DefaultMaxLines,
			FileMode: DefaultFileMode,
		},
		SizeRotation: SizeRotationConfig{
			MaxSizeMB: xrotate.DefaultMaxSizeMB,
		},
	}
}

// Validate 校验配置，一次返回全部问题。
//
// 返回的错误包装 [ErrInvalidConfig]。
func (c *LogConfig) Validate() error {
	var errs []error

	if _, err := xlog.ParseLevel(c.Level); err != nil {
		errs = append(errs, fmt.Errorf("level: %w", err))
	}
	if _, err := xsink.ParsePolicy(c.FanOutPolicy); err != nil {
		errs = append(errs, fmt.Errorf("fanout_policy: %w", err))
	}
	if c.Console.Enabled {
		if err := c.Console.checkStream(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Rotation.Enabled {
		errs = append(errs, c.Rotation.validate()...)
	}
	if c.SizeRotation.Enabled {
		errs = append(errs, c.SizeRotation.validate()...)
	}
	if !c.Console.Enabled && !c.Rotation.Enabled && !c.SizeRotation.Enabled {
		errs = append(errs, ErrNoOutput)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (r RotationConfig) validate() []error {
	var errs []error
	if r.Dir == "" {
		errs = append(errs, fmt.Errorf("rotation.dir: %w", xrotate.ErrEmptyDir))
	}
	if err := xfile.ValidateFileName(r.BaseFilename); err != nil {
		errs = append(errs, fmt.Errorf("rotation.base_filename: %w", err))
	}
	if r.MaxLines < 1 {
		errs = append(errs, fmt.Errorf("rotation.max_lines: must be >= 1, got %d", r.MaxLines))
	}
	if _, err := r.FileMode.Perm(); err != nil {
		errs = append(errs, fmt.Errorf("rotation.file_mode: %w", err))
	}
	return errs
}

func (s SizeRotationConfig) validate() []error {
	var errs []error
	if s.Filename == "" {
		errs = append(errs, fmt.Errorf("size_rotation.filename: %w", xrotate.ErrEmptyFilename))
	}
	if s.MaxSizeMB < 1 || s.MaxSizeMB > xrotate.MaxSizeMBLimit {
		errs = append(errs, fmt.Errorf("size_rotation.max_size_mb: %w: got %d", xrotate.ErrInvalidMaxSize, s.MaxSizeMB))
	}
	return errs
}

// checkStream 校验输出流名称。
func (c ConsoleConfig) checkStream() error {
	switch strings.ToLower(strings.TrimSpace(c.Stream)) {
	case "", StreamStdout, StreamStderr:
		return nil
	default:
		return fmt.Errorf("console.stream: unknown stream %q", c.Stream)
	}
}

// LevelValue 返回解析后的日志级别。
func (c *LogConfig) LevelValue() (xlog.Level, error) {
	return xlog.ParseLevel(c.Level)
}

// applyOptions ApplyTo 的运行时依赖
type applyOptions struct {
	stdout   io.Writer
	stderr   io.Writer
	lineOpts []xrotate.LinesOption
	sizeOpts []xrotate.SizeOption
}

// ApplyOption ApplyTo/Build 选项
type ApplyOption func(*applyOptions)

// WithStreams 替换 console.stream 对应的输出流，nil 表示保持 os.Stdout/os.Stderr
func WithStreams(stdout, stderr io.Writer) ApplyOption {
	return func(o *applyOptions) {
		if stdout != nil {
			o.stdout = stdout
		}
		if stderr != nil {
			o.stderr = stderr
		}
	}
}

// WithLinesOptions 追加按行轮转选项，用于注入 MeterProvider、错误回调等
func WithLinesOptions(opts ...xrotate.LinesOption) ApplyOption {
	return func(o *applyOptions) {
		o.lineOpts = append(o.lineOpts, opts...)
	}
}

// WithSizeOptions 追加按大小轮转选项
func WithSizeOptions(opts ...xrotate.SizeOption) ApplyOption {
	return func(o *applyOptions) {
		o.sizeOpts = append(o.sizeOpts, opts...)
	}
}

// ApplyTo 将配置应用到 Builder：级别、服务名、扇出策略和所有启用的输出目标。
//
// 输出目标按 console、rotation、size_rotation 的顺序加入。
func (c *LogConfig) ApplyTo(b *xlog.Builder, opts ...ApplyOption) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o := applyOptions{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	level, _ := c.LevelValue()
	policy, _ := xsink.ParsePolicy(c.FanOutPolicy)
	b.SetLevel(level).SetService(c.ServiceName).SetFanOutPolicy(policy)

	if c.Console.Enabled {
		w := o.stdout
		if strings.EqualFold(strings.TrimSpace(c.Console.Stream), StreamStderr) {
			w = o.stderr
		}
		b.AddConsole(xsink.WithOutput(w))
	}
	if r := c.Rotation; r.Enabled {
		mode, _ := r.FileMode.Perm()
		lineOpts := append([]xrotate.LinesOption{
			xrotate.WithFileMode(mode),
			xrotate.WithCreateDir(r.CreateDir),
		}, o.lineOpts...)
		b.AddRotation(r.Dir, r.BaseFilename, r.MaxLines, lineOpts...)
	}
	if s := c.SizeRotation; s.Enabled {
		sizeOpts := append([]xrotate.SizeOption{
			xrotate.WithMaxSize(s.MaxSizeMB),
			xrotate.WithLocalTime(s.LocalTime),
		}, o.sizeOpts...)
		b.AddSizeRotation(s.Filename, sizeOpts...)
	}
	return nil
}

// Build 按配置构建 Logger，返回值同 xlog.Builder.Build。
func (c *LogConfig) Build(opts ...ApplyOption) (*xlog.Logger, func() error, error) {
	b := xlog.New()
	if err := c.ApplyTo(b, opts...); err != nil {
		return nil, nil, err
	}
	return b.Build()
}
