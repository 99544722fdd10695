// Package observability 提供日志输出相关的子包。
//
// 子包列表：
//   - xlog: JSON 行结构化日志，Builder 装配、一次性全局实例、slog 桥接
//   - xsink: 日志输出目标抽象，控制台、内存、扇出
//   - xrotate: 日志文件轮转，按行数和按大小两种策略
//
// 设计原则：
//   - 每条日志是一行完整 JSON，写入失败以 error 返回
//   - 自动从 context 中提取追踪信息注入日志
//   - 支持动态级别控制
package observability
