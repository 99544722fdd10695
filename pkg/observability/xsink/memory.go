package xsink

import "sync"

// Memory 内存 Sink，保存所有写入的行
//
// 并发安全，主要用于测试。
type Memory struct {
	mu    sync.Mutex
	lines []string
}

// NewMemory 创建 Memory
func NewMemory() *Memory {
	return &Memory{}
}

// Write 追加一行
func (m *Memory) Write(line string) error {
	m.mu.Lock()
	m.lines = append(m.lines, line)
	m.mu.Unlock()
	return nil
}

// Lines 返回已写入行的副本
func (m *Memory) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Len 返回已写入行数
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines)
}

// Reset 清空
func (m *Memory) Reset() {
	m.mu.Lock()
	m.lines = nil
	m.mu.Unlock()
}
