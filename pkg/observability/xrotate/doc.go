// Package xrotate 提供日志文件轮转写入器。
//
// [Rotator] 接口定义了轮转器的核心行为（Write/Rotate/Close），
// 同时满足 xsink.Sink，可直接作为 xlog 的输出目标或加入 xsink.FanOut。
//
// # 当前实现
//
//   - [NewLines]: 按行数轮转。每个文件最多 maxLines 行，文件名为
//     "{baseName}.{suffix}"，suffix 为严格递增的纳秒时间戳
//   - [NewSize]: 基于 lumberjack v2 的按大小轮转（不压缩、不清理备份）
//
// # 按行轮转的语义
//
// 轮转是惰性的：没有打开的文件，或当前文件已写满 maxLines 行时，
// 由下一次 Write 触发。轮转先关闭当前文件，再以 O_CREATE|O_APPEND 打开新文件
// （从不截断同名文件），行计数归零。
//
// 打开新文件失败时写入器不持有任何文件，下一次 Write 会重新尝试轮转；
// 写入失败时当前文件保持打开，行计数不变。
//
// 同一写入器生成的文件名互不相同：时钟返回的时间戳不大于上一次 suffix 时，
// 使用上一次 suffix + 1。19 位纳秒时间戳的字典序即创建顺序，[ListFiles]
// 按 suffix 数值排序返回。
//
// 轮转器从不删除或压缩旧文件，保留策略由外部负责。
//
// # 并发
//
// 所有实现都是并发安全的。xlog.Logger 在外层另有互斥锁，两者不冲突。
package xrotate
