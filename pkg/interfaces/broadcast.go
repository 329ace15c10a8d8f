// Package interfaces 定义 go-broadcast 公共接口
//
// 本文件定义 Router 接口——宿主网络运行时与洪泛核心之间的完整契约。
package interfaces

import (
	"github.com/dep2p/go-broadcast/pkg/types"
)

// Router 定义主题洪泛协议核心的宿主契约
//
// Router 维护本节点的订阅簿记（本地订阅集合、节点↔主题双向索引）并
// 决定每条控制/数据消息发往哪些直连节点。它自身不做任何网络 I/O：
// 所有外部可见效果都经由出站队列，宿主通过 Poll 逐条取出执行。
//
// # 驱动模型
//
// 单线程协作式：宿主在同一个 goroutine 中交替地
//  1. 投递至多一条入站事件（连接边沿或入站消息）
//  2. 排空出站队列（循环 Poll 直到返回 false）
//
// Router 不加内部锁，所有方法同步执行、立即返回、从不阻塞。
// 并发调用属于宿主契约违例，行为未定义。
//
// # 前置条件
//
// 入站消息必须来自已报告连接建立、且尚未报告完全断开的节点。
// 违反该前置条件时 Router 以 panic 快速失败，而非静默破坏索引。
type Router interface {
	// Subscribe 声明本节点对主题的兴趣（幂等）
	//
	// 每次调用都会向每个当前连接的节点入队一条订阅声明，
	// 不论对方是否已经知晓。不产生本地事件。
	Subscribe(topic types.Topic)

	// Unsubscribe 撤回本节点对主题的兴趣（幂等）
	//
	// 只通知已记录为订阅了该主题的节点（与 Subscribe 的
	// 全量通知不对称，是协议既定行为）。
	Unsubscribe(topic types.Topic)

	// Publish 向主题的所有已知订阅节点洪泛一条消息
	//
	// 不触及任何索引；主题无订阅者时静默无操作。
	// payload 的底层数组在所有队列副本间共享，入队后不得修改。
	Publish(topic types.Topic, payload []byte)

	// Subscribed 返回本节点当前订阅的主题
	Subscribed() []types.Topic

	// Peers 返回已知订阅了指定主题的连接节点
	//
	// 第二个返回值为 false 表示该主题从未有订阅记录。
	Peers(topic types.Topic) ([]types.PeerID, bool)

	// Topics 返回指定节点声明过的主题
	//
	// 第二个返回值为 false 表示该节点当前未连接。
	Topics(peer types.PeerID) ([]types.Topic, bool)

	// HandleConnectionEstablished 处理连接建立通知
	//
	// firstConnection 为 true 表示该节点 0→1 条活跃连接的边沿
	// （去抖由宿主的连接计数完成）；非边沿调用是无操作。
	// 边沿上创建节点的索引项，并向新节点逐一声明本地订阅。
	HandleConnectionEstablished(peer types.PeerID, firstConnection bool)

	// HandleConnectionClosed 处理连接关闭通知
	//
	// lastConnection 为 true 表示该节点最后一条活跃连接关闭的边沿；
	// 非边沿调用是无操作。边沿上清除该节点的全部索引项。
	// 不入队任何出站消息，也不合成退订事件。
	HandleConnectionClosed(peer types.PeerID, lastConnection bool)

	// HandleMessage 处理来自指定连接节点的一条入站消息
	HandleMessage(from types.PeerID, msg types.Message)

	// HandleSendAck 处理单条消息发送完成的确认
	//
	// 确认不携带任何主题/节点语义，被消费后直接丢弃。
	HandleSendAck(peer types.PeerID)

	// Poll 取出出站队列中最旧的条目
	//
	// 队列为空时返回 (nil, false)。出队顺序严格等于入队顺序。
	Poll() (types.Action, bool)

	// PendingActions 返回出站队列中待取条目数
	PendingActions() int
}
