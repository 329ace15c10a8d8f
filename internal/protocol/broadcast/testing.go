// Package broadcast 实现主题洪泛协议核心
package broadcast

import (
	"bytes"
	"fmt"

	"github.com/dep2p/go-broadcast/pkg/types"
)

// dummySwarm 进程内测试载体
//
// 模拟一个宿主节点：持有自己的路由器，并把 NotifyPeer 动作经过
// 完整的线上编解码投递给直连节点的路由器。多个 dummySwarm 共享
// 索引状态只是测试在同一进程里模拟多个宿主的产物，协议本身
// 每个节点独占自己的状态。
type dummySwarm struct {
	id     types.PeerID
	router *Router
	links  map[types.PeerID]*dummySwarm
}

// newDummySwarm 创建测试载体
func newDummySwarm(opts ...Option) *dummySwarm {
	return &dummySwarm{
		id:     types.RandomPeerID(),
		router: NewRouter(opts...),
		links:  make(map[types.PeerID]*dummySwarm),
	}
}

// peerID 返回本节点标识
func (s *dummySwarm) peerID() types.PeerID {
	return s.id
}

// dial 建立双向连接
//
// 向两端路由器各报告一次 0→1 连接边沿。
func (s *dummySwarm) dial(other *dummySwarm) {
	s.router.HandleConnectionEstablished(other.id, true)
	s.links[other.id] = other

	other.router.HandleConnectionEstablished(s.id, true)
	other.links[s.id] = s
}

// hangUp 断开双向连接
//
// 向两端路由器各报告一次 1→0 连接边沿。
func (s *dummySwarm) hangUp(other *dummySwarm) {
	s.router.HandleConnectionClosed(other.id, true)
	delete(s.links, other.id)

	other.router.HandleConnectionClosed(s.id, true)
	delete(other.links, s.id)
}

// next 排空出站队列直到产生一个应用事件
//
// NotifyPeer 动作经过编码→解码走一遍"线上"路径后投递给对端，
// 对端随即收到发送确认；目标不在直连表中的消息按尽力投递丢弃。
// 队列排空且无事件时返回 (nil, false)。
func (s *dummySwarm) next() (types.BroadcastEvent, bool) {
	maxSize := s.router.Config().MaxMessageSize

	for {
		act, ok := s.router.Poll()
		if !ok {
			return nil, false
		}

		switch a := act.(type) {
		case types.ActionNotifyPeer:
			other, connected := s.links[a.Peer]
			if !connected {
				continue // 对端已断开，尽力投递直接丢弃
			}

			var buf bytes.Buffer
			if err := WriteMessage(&buf, a.Message, maxSize); err != nil {
				panic(fmt.Sprintf("dummySwarm: encode failed: %v", err))
			}
			msg, err := ReadMessage(&buf, maxSize)
			if err != nil {
				panic(fmt.Sprintf("dummySwarm: decode failed: %v", err))
			}

			other.router.HandleMessage(s.id, msg)
			s.router.HandleSendAck(a.Peer)

		case types.ActionEmitEvent:
			return a.Event, true

		default:
			panic(fmt.Sprintf("dummySwarm: unexpected action %T", act))
		}
	}
}

// subscribe 本地订阅
func (s *dummySwarm) subscribe(topic types.Topic) {
	s.router.Subscribe(topic)
}

// unsubscribe 本地退订
func (s *dummySwarm) unsubscribe(topic types.Topic) {
	s.router.Unsubscribe(topic)
}

// publish 本地发布
func (s *dummySwarm) publish(topic types.Topic, payload []byte) {
	s.router.Publish(topic, payload)
}
