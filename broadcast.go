package broadcast

import (
	"time"

	protocol "github.com/dep2p/go-broadcast/internal/protocol/broadcast"
	"github.com/dep2p/go-broadcast/pkg/interfaces"
	"github.com/dep2p/go-broadcast/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// ProtocolID 协议标识，宿主据此协商承载流
const ProtocolID = protocol.ProtocolID

// ════════════════════════════════════════════════════════════════════════════
//                              类型再导出
// ════════════════════════════════════════════════════════════════════════════

// 核心类型别名，调用方只需导入本包。

// PeerID 节点标识
type PeerID = types.PeerID

// Topic 主题标识
type Topic = types.Topic

// Message 线上消息
type Message = types.Message

// MessageKind 消息类别
type MessageKind = types.MessageKind

// 消息类别常量
const (
	MessageSubscribe   = types.MessageSubscribe
	MessageUnsubscribe = types.MessageUnsubscribe
	MessageBroadcast   = types.MessageBroadcast
)

// Router 协议核心接口
type Router = interfaces.Router

// 出站动作
type (
	// Action 出站动作联合类型
	Action = types.Action

	// ActionNotifyPeer 经宿主连接向对端发送一条消息
	ActionNotifyPeer = types.ActionNotifyPeer

	// ActionEmitEvent 向应用层上交一个事件
	ActionEmitEvent = types.ActionEmitEvent
)

// 应用事件
type (
	// BroadcastEvent 应用事件联合类型
	BroadcastEvent = types.BroadcastEvent

	// EvtPeerSubscribed 对端声明订阅
	EvtPeerSubscribed = types.EvtPeerSubscribed

	// EvtPeerUnsubscribed 对端声明退订
	EvtPeerUnsubscribed = types.EvtPeerUnsubscribed

	// EvtMessageReceived 收到对端发布的消息
	EvtMessageReceived = types.EvtMessageReceived
)

// 配置选项
type Option = protocol.Option

// WithMaxMessageSize 设置最大消息大小
func WithMaxMessageSize(size int) Option {
	return protocol.WithMaxMessageSize(size)
}

// WithSendTimeout 设置单条消息发送超时
func WithSendTimeout(timeout time.Duration) Option {
	return protocol.WithSendTimeout(timeout)
}

// ════════════════════════════════════════════════════════════════════════════
//                              构造入口
// ════════════════════════════════════════════════════════════════════════════

// New 创建协议路由器
//
// 返回的路由器索引为空，等待宿主报告连接边沿。
func New(opts ...Option) Router {
	return protocol.NewRouter(opts...)
}

// NewTopic 由名称派生主题标识
func NewTopic(name []byte) Topic {
	return types.NewTopic(name)
}

// TopicFromString 由字符串派生主题标识
func TopicFromString(name string) Topic {
	return types.TopicFromString(name)
}
