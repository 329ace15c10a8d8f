package types

// ============================================================================
//                              应用事件
// ============================================================================

// BroadcastEvent 应用可见的协议事件
//
// 封闭联合类型：只有下列三个 Evt* 变体实现本接口。
// 事件按值交付给宿主，交付后不可变。
type BroadcastEvent interface {
	isBroadcastEvent()
}

// EvtPeerSubscribed 远端节点订阅了某主题
type EvtPeerSubscribed struct {
	// Peer 发出订阅声明的节点
	Peer PeerID
	// Topic 被订阅的主题
	Topic Topic
}

// EvtPeerUnsubscribed 远端节点退订了某主题
type EvtPeerUnsubscribed struct {
	// Peer 发出退订声明的节点
	Peer PeerID
	// Topic 被退订的主题
	Topic Topic
}

// EvtMessageReceived 收到远端节点的主题广播
//
// 投递不取决于本节点是否订阅该主题；本模块不向其他节点转发
// （单跳洪泛，是否继续扩散由应用层决定）。
type EvtMessageReceived struct {
	// From 直接发送方（不一定是消息源头）
	From PeerID
	// Topic 消息所属主题
	Topic Topic
	// Payload 载荷字节，与发送方队列中的副本共享底层数组
	Payload []byte
}

func (EvtPeerSubscribed) isBroadcastEvent()   {}
func (EvtPeerUnsubscribed) isBroadcastEvent() {}
func (EvtMessageReceived) isBroadcastEvent()  {}

// ============================================================================
//                              出站动作
// ============================================================================

// Action 出站队列条目
//
// 封闭联合类型：NotifyPeer（待发送的控制/数据消息）与
// EmitEvent（待上交应用层的事件）。队列内 FIFO 顺序即宿主可见的
// 全局生效顺序。
type Action interface {
	isAction()
}

// ActionNotifyPeer 向指定节点发送一条消息
//
// 对本模块而言是 fire-and-forget：宿主尽力投递，不反馈结果。
// 目标节点在出队前断开时，宿主可直接丢弃该条目。
type ActionNotifyPeer struct {
	// Peer 目标节点
	Peer PeerID
	// Message 待发送的消息
	Message Message
}

// ActionEmitEvent 向应用层上交一个事件
type ActionEmitEvent struct {
	// Event 待上交的事件
	Event BroadcastEvent
}

func (ActionNotifyPeer) isAction() {}
func (ActionEmitEvent) isAction()  {}
