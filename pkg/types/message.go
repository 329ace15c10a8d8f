package types

// ============================================================================
//                              MessageKind - 消息类型
// ============================================================================

// MessageKind 线上消息的变体标签
//
// 协议只有三种消息，路由器对其做穷尽匹配，不存在开放式扩展。
type MessageKind uint8

const (
	// MessageSubscribe 订阅声明：发送方对 Topic 声明兴趣
	MessageSubscribe MessageKind = iota
	// MessageUnsubscribe 退订声明：发送方撤回对 Topic 的兴趣
	MessageUnsubscribe
	// MessageBroadcast 数据消息：携带载荷的主题广播
	MessageBroadcast
)

// String 返回消息类型的字符串表示
func (k MessageKind) String() string {
	switch k {
	case MessageSubscribe:
		return "subscribe"
	case MessageUnsubscribe:
		return "unsubscribe"
	case MessageBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// Valid 检查消息类型是否为已知变体
func (k MessageKind) Valid() bool {
	return k <= MessageBroadcast
}

// ============================================================================
//                              Message - 线上消息
// ============================================================================

// Message 三变体线上消息
//
// Subscribe/Unsubscribe 只携带 Topic；Broadcast 额外携带载荷。
// Payload 的底层数组在多个队列条目间共享，入队后不得修改。
type Message struct {
	// Kind 变体标签
	Kind MessageKind

	// Topic 消息所属主题
	Topic Topic

	// Payload 载荷字节（仅 Kind == MessageBroadcast 时有效）
	Payload []byte
}

// NewSubscribeMessage 构造订阅声明消息
func NewSubscribeMessage(topic Topic) Message {
	return Message{Kind: MessageSubscribe, Topic: topic}
}

// NewUnsubscribeMessage 构造退订声明消息
func NewUnsubscribeMessage(topic Topic) Message {
	return Message{Kind: MessageUnsubscribe, Topic: topic}
}

// NewBroadcastMessage 构造主题广播消息
//
// 不复制 payload，所有副本共享同一底层数组。
func NewBroadcastMessage(topic Topic, payload []byte) Message {
	return Message{Kind: MessageBroadcast, Topic: topic, Payload: payload}
}
