// Package broadcast 实现主题洪泛协议核心
package broadcast

import (
	"github.com/dep2p/go-broadcast/pkg/types"
)

// actionQueue 出站动作 FIFO 队列
//
// 路由器独占持有，是全部宿主可见效果的唯一串行化点。
// 出队顺序严格等于入队顺序。
type actionQueue struct {
	entries []types.Action
	head    int
}

// newActionQueue 创建出站动作队列
func newActionQueue() *actionQueue {
	return &actionQueue{}
}

// Push 追加一个动作到队尾
func (q *actionQueue) Push(act types.Action) {
	q.entries = append(q.entries, act)
}

// Pop 取出队首动作
//
// 队列为空时返回 (nil, false)。
func (q *actionQueue) Pop() (types.Action, bool) {
	if q.head >= len(q.entries) {
		return nil, false
	}

	act := q.entries[q.head]
	q.entries[q.head] = nil // 释放引用，避免滞留载荷
	q.head++

	// 已消费部分超过一半时压缩底层数组
	if q.head > 32 && q.head*2 >= len(q.entries) {
		n := copy(q.entries, q.entries[q.head:])
		q.entries = q.entries[:n]
		q.head = 0
	}

	return act, true
}

// Len 返回待取条目数
func (q *actionQueue) Len() int {
	return len(q.entries) - q.head
}
