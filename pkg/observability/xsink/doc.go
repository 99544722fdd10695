// Package xsink 定义日志行输出目标（Sink）及其组合方式。
//
// Sink 只有一个能力：接收一行文本，报告 I/O 失败。
// 具体实现：
//
//   - [Console]: 写标准输出（或任意 io.Writer）
//   - [FanOut]: 按添加顺序广播到多个 Sink，默认 fail-fast
//   - [Memory]: 内存缓冲，供测试使用
//   - [Func]: 函数适配器
//   - [WriterSink]: 把任意 io.Writer（如 xrotate.Size）适配为 Sink
//
// xrotate.Lines 同样实现 Sink，可直接加入 FanOut。
//
// # 可选能力
//
// Sink 可以额外实现 io.Closer 或 [Syncer]。[Close] 和 [Sync] 通过类型断言
// 调用这些能力，未实现时视为成功。
//
// # 并发
//
// 除 [Memory] 外，Sink 实现不自带锁，由上层（xlog.Logger）串行化写入。
package xsink
