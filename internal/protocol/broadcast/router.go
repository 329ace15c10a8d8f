// Package broadcast 实现主题洪泛协议核心
package broadcast

import (
	"fmt"

	"github.com/dep2p/go-broadcast/pkg/interfaces"
	"github.com/dep2p/go-broadcast/pkg/lib/log"
	"github.com/dep2p/go-broadcast/pkg/types"
)

// broadcast 模块 logger
var logger = log.Logger("protocol/broadcast")

// Router 主题洪泛路由器
//
// 维护订阅索引并将全部外部可见效果写入出站队列。
// 索引与队列均由本结构独占持有；宿主必须在单一 goroutine 中驱动，
// 本结构不加内部锁（见 pkg/interfaces/broadcast.go 的驱动模型）。
//
// 索引不变式（每个操作完成后成立）：
//   - 对称性: topic ∈ peers[p] ⟺ p ∈ topics[topic]
//   - 无幽灵节点: peers 的键都是当前连接的节点
//   - subscriptions 只记录本节点兴趣，与远端状态无关
type Router struct {
	config *Config

	// subscriptions 本节点声明过兴趣的主题
	subscriptions map[types.Topic]struct{}

	// peers 每个连接节点声明过的主题
	peers map[types.PeerID]map[types.Topic]struct{}

	// topics 反向索引：每个主题的已知订阅节点
	topics map[types.Topic]map[types.PeerID]struct{}

	// queue 出站动作队列
	queue *actionQueue
}

// 确保 Router 实现了 interfaces.Router 接口
var _ interfaces.Router = (*Router)(nil)

// NewRouter 创建洪泛路由器
func NewRouter(opts ...Option) *Router {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	return &Router{
		config:        config,
		subscriptions: make(map[types.Topic]struct{}),
		peers:         make(map[types.PeerID]map[types.Topic]struct{}),
		topics:        make(map[types.Topic]map[types.PeerID]struct{}),
		queue:         newActionQueue(),
	}
}

// Config 返回协议配置
//
// 配置对洪泛决策不透明，宿主读取其中的线上参数（大小上限、超时）。
func (r *Router) Config() Config {
	return *r.config
}

// ════════════════════════════════════════════════════════════════════════════
//                              本地 API
// ════════════════════════════════════════════════════════════════════════════

// Subscribe 声明本节点对主题的兴趣（幂等）
//
// 向每个当前连接的节点入队一条订阅声明——不论对方是否已知晓，
// 每次调用都重新通告。不产生本地事件（调用方已知道自己订阅了）。
func (r *Router) Subscribe(topic types.Topic) {
	r.subscriptions[topic] = struct{}{}

	msg := types.NewSubscribeMessage(topic)
	for peer := range r.peers {
		r.queue.Push(types.ActionNotifyPeer{Peer: peer, Message: msg})
	}

	logger.Debug("本地订阅", "topic", topic.ShortString(), "notified", len(r.peers))
}

// Unsubscribe 撤回本节点对主题的兴趣（幂等）
//
// 只通知已记录为订阅了该主题的节点，而非全部连接节点
// （与 Subscribe 的全量通告不对称，是协议既定行为）。
func (r *Router) Unsubscribe(topic types.Topic) {
	delete(r.subscriptions, topic)

	msg := types.NewUnsubscribeMessage(topic)
	for peer := range r.topics[topic] {
		r.queue.Push(types.ActionNotifyPeer{Peer: peer, Message: msg})
	}

	logger.Debug("本地退订", "topic", topic.ShortString(), "notified", len(r.topics[topic]))
}

// Publish 向主题的所有已知订阅节点洪泛一条消息
//
// 不触及任何索引。主题无订阅记录时静默无操作。
// payload 的底层数组在所有队列副本间共享，入队后不得修改。
func (r *Router) Publish(topic types.Topic, payload []byte) {
	subscribers := r.topics[topic]
	if len(subscribers) == 0 {
		logger.Debug("发布无订阅者", "topic", topic.ShortString())
		return
	}

	msg := types.NewBroadcastMessage(topic, payload)
	for peer := range subscribers {
		r.queue.Push(types.ActionNotifyPeer{Peer: peer, Message: msg})
	}

	logger.Debug("发布消息",
		"topic", topic.ShortString(),
		"size", len(payload),
		"fanout", len(subscribers))
}

// Subscribed 返回本节点当前订阅的主题
func (r *Router) Subscribed() []types.Topic {
	out := make([]types.Topic, 0, len(r.subscriptions))
	for topic := range r.subscriptions {
		out = append(out, topic)
	}
	return out
}

// Peers 返回已知订阅了指定主题的连接节点
//
// 第二个返回值为 false 表示该主题从未有订阅记录。
func (r *Router) Peers(topic types.Topic) ([]types.PeerID, bool) {
	set, ok := r.topics[topic]
	if !ok {
		return nil, false
	}
	out := make([]types.PeerID, 0, len(set))
	for peer := range set {
		out = append(out, peer)
	}
	return out, true
}

// Topics 返回指定节点声明过的主题
//
// 第二个返回值为 false 表示该节点当前未连接。
func (r *Router) Topics(peer types.PeerID) ([]types.Topic, bool) {
	set, ok := r.peers[peer]
	if !ok {
		return nil, false
	}
	out := make([]types.Topic, 0, len(set))
	for topic := range set {
		out = append(out, topic)
	}
	return out, true
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期钩子
// ════════════════════════════════════════════════════════════════════════════

// HandleConnectionEstablished 处理连接建立通知
//
// 一个节点可以有多条并发连接；只在 0→1 条活跃连接的边沿
// （firstConnection 为 true，去抖由宿主的连接计数完成）生效。
func (r *Router) HandleConnectionEstablished(peer types.PeerID, firstConnection bool) {
	if !firstConnection {
		return
	}
	r.peerConnected(peer)
}

// HandleConnectionClosed 处理连接关闭通知
//
// 只在最后一条活跃连接关闭的边沿（lastConnection 为 true）生效。
func (r *Router) HandleConnectionClosed(peer types.PeerID, lastConnection bool) {
	if !lastConnection {
		return
	}
	r.peerDisconnected(peer)
}

// peerConnected 节点首条连接建立
//
// 创建索引项并向新节点逐一声明本地订阅。
func (r *Router) peerConnected(peer types.PeerID) {
	if _, ok := r.peers[peer]; !ok {
		r.peers[peer] = make(map[types.Topic]struct{})
	}

	for topic := range r.subscriptions {
		r.queue.Push(types.ActionNotifyPeer{
			Peer:    peer,
			Message: types.NewSubscribeMessage(topic),
		})
	}

	logger.Debug("节点已连接",
		"peer", peer.ShortString(),
		"announced", len(r.subscriptions))
}

// peerDisconnected 节点最后一条连接关闭
//
// 清除双向索引。不入队出站消息（对方已离线），也不合成退订事件
// （连接状态与订阅状态正交，断开不等于退订）。
func (r *Router) peerDisconnected(peer types.PeerID) {
	announced, ok := r.peers[peer]
	if !ok {
		return
	}
	delete(r.peers, peer)

	for topic := range announced {
		if set, ok := r.topics[topic]; ok {
			delete(set, peer)
		}
	}

	logger.Debug("节点已断开",
		"peer", peer.ShortString(),
		"cleared", len(announced))
}

// ════════════════════════════════════════════════════════════════════════════
//                              入站消息处理
// ════════════════════════════════════════════════════════════════════════════

// HandleMessage 处理来自指定连接节点的一条入站消息
//
// 前置条件：from 已报告连接建立且尚未完全断开。订阅/退订消息
// 来自未知节点时视为宿主契约违例，直接 panic 快速失败。
func (r *Router) HandleMessage(from types.PeerID, msg types.Message) {
	switch msg.Kind {
	case types.MessageSubscribe:
		announced, ok := r.peers[from]
		if !ok {
			panic(fmt.Sprintf("broadcast: subscribe from unknown peer %s", from.ShortString()))
		}
		announced[msg.Topic] = struct{}{}

		set := r.topics[msg.Topic]
		if set == nil {
			set = make(map[types.PeerID]struct{})
			r.topics[msg.Topic] = set
		}
		set[from] = struct{}{}

		// 重复声明不抑制：索引写入幂等，事件照常上交
		r.queue.Push(types.ActionEmitEvent{Event: types.EvtPeerSubscribed{
			Peer:  from,
			Topic: msg.Topic,
		}})

	case types.MessageUnsubscribe:
		announced, ok := r.peers[from]
		if !ok {
			panic(fmt.Sprintf("broadcast: unsubscribe from unknown peer %s", from.ShortString()))
		}
		delete(announced, msg.Topic)

		if set, ok := r.topics[msg.Topic]; ok {
			delete(set, from)
		}

		// 未曾订阅也照常上交：索引前置条件不成立不算错误
		r.queue.Push(types.ActionEmitEvent{Event: types.EvtPeerUnsubscribed{
			Peer:  from,
			Topic: msg.Topic,
		}})

	case types.MessageBroadcast:
		// 无条件上交，不取决于本节点是否订阅；绝不回流给其他节点
		r.queue.Push(types.ActionEmitEvent{Event: types.EvtMessageReceived{
			From:    from,
			Topic:   msg.Topic,
			Payload: msg.Payload,
		}})

	default:
		panic(fmt.Sprintf("broadcast: unknown message kind %d from %s", msg.Kind, from.ShortString()))
	}
}

// HandleSendAck 处理单条消息发送完成的确认
//
// 确认不携带主题/节点语义，消费后丢弃，不产生队列条目。
func (r *Router) HandleSendAck(peer types.PeerID) {
	logger.Debug("发送确认", "peer", peer.ShortString())
}

// ════════════════════════════════════════════════════════════════════════════
//                              出站队列
// ════════════════════════════════════════════════════════════════════════════

// Poll 取出出站队列中最旧的条目
//
// 队列为空时返回 (nil, false)。这是状态变更对外可见的唯一途径。
func (r *Router) Poll() (types.Action, bool) {
	return r.queue.Pop()
}

// PendingActions 返回出站队列中待取条目数
func (r *Router) PendingActions() int {
	return r.queue.Len()
}
