// Package xconf 加载日志配置文件并据此构建 xlog.Logger。
//
// 配置使用 koanf 解析，支持 YAML 与 JSON，格式由扩展名决定：
//
//	cfg, err := xconf.Load("/etc/api/log.yaml")
//	if err != nil {
//	    return err
//	}
//	logger, cleanup, err := cfg.Build()
//
// 未出现的字段取 [Default] 的值；[LogConfig.Validate] 一次报告所有问题，
// 错误包装 [ErrInvalidConfig]。
//
// # 热更新
//
// [Watch] 基于 fsnotify 监视配置文件所在目录，防抖后重新加载并回调。
// [WatchLevel] 是常见用法的封装：只把新的 level 设置到运行中的 Logger。
package xconf
