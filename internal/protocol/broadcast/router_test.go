package broadcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-broadcast/pkg/types"
)

// drainActions 排空出站队列
func drainActions(r *Router) []types.Action {
	var out []types.Action
	for {
		act, ok := r.Poll()
		if !ok {
			return out
		}
		out = append(out, act)
	}
}

// notifyActions 过滤出 NotifyPeer 动作
func notifyActions(acts []types.Action) []types.ActionNotifyPeer {
	var out []types.ActionNotifyPeer
	for _, act := range acts {
		if n, ok := act.(types.ActionNotifyPeer); ok {
			out = append(out, n)
		}
	}
	return out
}

// assertIndexSymmetry 校验双向索引对称性
//
// 对所有节点 p 与主题 t：t ∈ peers[p] ⟺ p ∈ topics[t]
func assertIndexSymmetry(t *testing.T, r *Router) {
	t.Helper()

	for peer, topics := range r.peers {
		for topic := range topics {
			set, ok := r.topics[topic]
			require.True(t, ok, "topics missing entry for %s", topic.ShortString())
			_, ok = set[peer]
			assert.True(t, ok, "peer %s missing from topics[%s]", peer.ShortString(), topic.ShortString())
		}
	}
	for topic, peers := range r.topics {
		for peer := range peers {
			set, ok := r.peers[peer]
			require.True(t, ok, "peers missing entry for %s", peer.ShortString())
			_, ok = set[topic]
			assert.True(t, ok, "topic %s missing from peers[%s]", topic.ShortString(), peer.ShortString())
		}
	}
}

func TestRouterSubscribeNotifiesAllPeers(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	p1 := types.RandomPeerID()
	p2 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)
	r.HandleConnectionEstablished(p2, true)

	r.Subscribe(topic)

	notifies := notifyActions(drainActions(r))
	require.Len(t, notifies, 2)
	seen := map[types.PeerID]bool{}
	for _, n := range notifies {
		assert.Equal(t, types.MessageSubscribe, n.Message.Kind)
		assert.Equal(t, topic, n.Message.Topic)
		seen[n.Peer] = true
	}
	assert.True(t, seen[p1])
	assert.True(t, seen[p2])
}

func TestRouterSubscribeIdempotent(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	// 连续两次订阅：本地集合不变，但每次都重新通告
	r.Subscribe(topic)
	r.Subscribe(topic)

	assert.Len(t, r.Subscribed(), 1)
	assert.Len(t, notifyActions(drainActions(r)), 2)
}

func TestRouterUnsubscribeNotifiesOnlySubscribers(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	subscriber := types.RandomPeerID()
	bystander := types.RandomPeerID()
	r.HandleConnectionEstablished(subscriber, true)
	r.HandleConnectionEstablished(bystander, true)
	r.HandleMessage(subscriber, types.NewSubscribeMessage(topic))

	r.Subscribe(topic)
	drainActions(r)

	// 退订只通知已记录的订阅者，不是全部连接节点
	r.Unsubscribe(topic)

	notifies := notifyActions(drainActions(r))
	require.Len(t, notifies, 1)
	assert.Equal(t, subscriber, notifies[0].Peer)
	assert.Equal(t, types.MessageUnsubscribe, notifies[0].Message.Kind)
	assert.Empty(t, r.Subscribed())
}

func TestRouterUnsubscribeIdempotent(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	r.Unsubscribe(topic) // 从未订阅过
	assert.Empty(t, r.Subscribed())
	assert.Zero(t, r.PendingActions())
}

func TestRouterPublishFanout(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")
	payload := []byte("hello")

	p1 := types.RandomPeerID()
	p2 := types.RandomPeerID()
	p3 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)
	r.HandleConnectionEstablished(p2, true)
	r.HandleConnectionEstablished(p3, true)
	r.HandleMessage(p1, types.NewSubscribeMessage(topic))
	r.HandleMessage(p2, types.NewSubscribeMessage(topic))
	drainActions(r)

	r.Publish(topic, payload)

	// 每个订阅者恰好一条，且共享同一载荷底层数组
	notifies := notifyActions(drainActions(r))
	require.Len(t, notifies, 2)
	for _, n := range notifies {
		assert.Equal(t, types.MessageBroadcast, n.Message.Kind)
		assert.Same(t, &payload[0], &n.Message.Payload[0])
	}
}

func TestRouterPublishUnknownTopicNoop(t *testing.T) {
	r := NewRouter()

	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	r.Publish(types.TopicFromString("nobody-cares"), []byte("msg"))
	assert.Zero(t, r.PendingActions())
}

func TestRouterReceiveSubscribeEmitsEvent(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	r.HandleMessage(p1, types.NewSubscribeMessage(topic))

	acts := drainActions(r)
	require.Len(t, acts, 1)
	emit, ok := acts[0].(types.ActionEmitEvent)
	require.True(t, ok)
	assert.Equal(t, types.EvtPeerSubscribed{Peer: p1, Topic: topic}, emit.Event)

	peers, ok := r.Peers(topic)
	require.True(t, ok)
	assert.Equal(t, []types.PeerID{p1}, peers)
	assertIndexSymmetry(t, r)
}

func TestRouterReceiveDuplicateSubscribeStillEmits(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	// 重复声明：索引不变，事件照常上交
	r.HandleMessage(p1, types.NewSubscribeMessage(topic))
	r.HandleMessage(p1, types.NewSubscribeMessage(topic))

	assert.Equal(t, 2, r.PendingActions())
	peers, ok := r.Peers(topic)
	require.True(t, ok)
	assert.Len(t, peers, 1)
}

func TestRouterReceiveUnsubscribeAlwaysEmits(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	// 从未订阅过也照常上交事件
	r.HandleMessage(p1, types.NewUnsubscribeMessage(topic))

	acts := drainActions(r)
	require.Len(t, acts, 1)
	emit, ok := acts[0].(types.ActionEmitEvent)
	require.True(t, ok)
	assert.Equal(t, types.EvtPeerUnsubscribed{Peer: p1, Topic: topic}, emit.Event)
	assertIndexSymmetry(t, r)
}

func TestRouterReceiveBroadcastNoRelay(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")
	payload := []byte("msg")

	sender := types.RandomPeerID()
	other := types.RandomPeerID()
	r.HandleConnectionEstablished(sender, true)
	r.HandleConnectionEstablished(other, true)
	r.HandleMessage(sender, types.NewSubscribeMessage(topic))
	r.HandleMessage(other, types.NewSubscribeMessage(topic))
	drainActions(r)

	r.HandleMessage(sender, types.NewBroadcastMessage(topic, payload))

	// 只有 Emit，绝无回流的 NotifyPeer
	acts := drainActions(r)
	require.Len(t, acts, 1)
	emit, ok := acts[0].(types.ActionEmitEvent)
	require.True(t, ok)
	received, ok := emit.Event.(types.EvtMessageReceived)
	require.True(t, ok)
	assert.Equal(t, sender, received.From)
	assert.Equal(t, topic, received.Topic)
	assert.Same(t, &payload[0], &received.Payload[0])
}

func TestRouterReceiveBroadcastNotGatedOnLocalSubscription(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")

	sender := types.RandomPeerID()
	r.HandleConnectionEstablished(sender, true)

	// 本节点未订阅该主题，投递照常
	r.HandleMessage(sender, types.NewBroadcastMessage(topic, []byte("msg")))
	assert.Equal(t, 1, r.PendingActions())
}

func TestRouterConnectAnnouncesSubscriptions(t *testing.T) {
	r := NewRouter()
	t1 := types.TopicFromString("room/general")
	t2 := types.TopicFromString("alerts")

	r.Subscribe(t1)
	r.Subscribe(t2)
	drainActions(r)

	newcomer := types.RandomPeerID()
	r.HandleConnectionEstablished(newcomer, true)

	notifies := notifyActions(drainActions(r))
	require.Len(t, notifies, 2)
	announced := map[types.Topic]bool{}
	for _, n := range notifies {
		assert.Equal(t, newcomer, n.Peer)
		assert.Equal(t, types.MessageSubscribe, n.Message.Kind)
		announced[n.Message.Topic] = true
	}
	assert.True(t, announced[t1])
	assert.True(t, announced[t2])
}

func TestRouterConnectionEdgeDebounce(t *testing.T) {
	r := NewRouter()
	topic := types.TopicFromString("room/general")
	r.Subscribe(topic)
	drainActions(r)

	p1 := types.RandomPeerID()

	// 非边沿调用是无操作
	r.HandleConnectionEstablished(p1, false)
	assert.Zero(t, r.PendingActions())
	_, connected := r.Topics(p1)
	assert.False(t, connected)

	r.HandleConnectionEstablished(p1, true)
	assert.Equal(t, 1, r.PendingActions())
	drainActions(r)

	r.HandleConnectionClosed(p1, false)
	_, connected = r.Topics(p1)
	assert.True(t, connected)

	r.HandleConnectionClosed(p1, true)
	_, connected = r.Topics(p1)
	assert.False(t, connected)
}

func TestRouterDisconnectCleansIndex(t *testing.T) {
	r := NewRouter()
	t1 := types.TopicFromString("room/general")
	t2 := types.TopicFromString("alerts")

	p1 := types.RandomPeerID()
	p2 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)
	r.HandleConnectionEstablished(p2, true)
	r.HandleMessage(p1, types.NewSubscribeMessage(t1))
	r.HandleMessage(p1, types.NewSubscribeMessage(t2))
	r.HandleMessage(p2, types.NewSubscribeMessage(t1))
	drainActions(r)

	r.HandleConnectionClosed(p1, true)

	// 断开不产生任何队列条目
	assert.Zero(t, r.PendingActions())

	_, connected := r.Topics(p1)
	assert.False(t, connected)
	for _, set := range r.topics {
		_, ok := set[p1]
		assert.False(t, ok, "disconnected peer still present in topics index")
	}

	// 其余节点不受影响
	peers, ok := r.Peers(t1)
	require.True(t, ok)
	assert.Equal(t, []types.PeerID{p2}, peers)
	assertIndexSymmetry(t, r)
}

func TestRouterDisconnectUnknownPeerNoop(t *testing.T) {
	r := NewRouter()
	r.HandleConnectionClosed(types.RandomPeerID(), true)
	assert.Zero(t, r.PendingActions())
}

func TestRouterIndexSymmetryUnderChurn(t *testing.T) {
	r := NewRouter()
	topics := []types.Topic{
		types.TopicFromString("a"),
		types.TopicFromString("b"),
		types.TopicFromString("c"),
	}

	peers := make([]types.PeerID, 4)
	for i := range peers {
		peers[i] = types.RandomPeerID()
		r.HandleConnectionEstablished(peers[i], true)
	}

	// 交错的订阅/退订/断开/重连
	r.HandleMessage(peers[0], types.NewSubscribeMessage(topics[0]))
	r.HandleMessage(peers[1], types.NewSubscribeMessage(topics[0]))
	r.HandleMessage(peers[1], types.NewSubscribeMessage(topics[1]))
	r.HandleMessage(peers[2], types.NewSubscribeMessage(topics[2]))
	r.HandleMessage(peers[1], types.NewUnsubscribeMessage(topics[0]))
	r.HandleConnectionClosed(peers[2], true)
	r.HandleMessage(peers[3], types.NewSubscribeMessage(topics[1]))
	r.HandleConnectionEstablished(peers[2], true)
	r.HandleMessage(peers[2], types.NewSubscribeMessage(topics[1]))
	drainActions(r)

	assertIndexSymmetry(t, r)
}

func TestRouterMessageFromUnknownPeerPanics(t *testing.T) {
	topic := types.TopicFromString("room/general")
	stranger := types.RandomPeerID()

	// 宿主契约违例：快速失败而非静默破坏索引
	assert.Panics(t, func() {
		NewRouter().HandleMessage(stranger, types.NewSubscribeMessage(topic))
	})
	assert.Panics(t, func() {
		NewRouter().HandleMessage(stranger, types.NewUnsubscribeMessage(topic))
	})
}

func TestRouterSendAckDiscarded(t *testing.T) {
	r := NewRouter()
	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	r.HandleSendAck(p1)
	assert.Zero(t, r.PendingActions())
}

func TestRouterPollOrderMatchesCallOrder(t *testing.T) {
	r := NewRouter()
	t1 := types.TopicFromString("first")
	t2 := types.TopicFromString("second")

	p1 := types.RandomPeerID()
	r.HandleConnectionEstablished(p1, true)

	r.Subscribe(t1)
	r.HandleMessage(p1, types.NewSubscribeMessage(t2))
	r.Subscribe(t2)

	acts := drainActions(r)
	require.Len(t, acts, 3)
	assert.Equal(t, t1, acts[0].(types.ActionNotifyPeer).Message.Topic)
	assert.IsType(t, types.ActionEmitEvent{}, acts[1])
	assert.Equal(t, t2, acts[2].(types.ActionNotifyPeer).Message.Topic)
}

func TestRouterConfig(t *testing.T) {
	r := NewRouter(WithMaxMessageSize(4096))
	assert.Equal(t, 4096, r.Config().MaxMessageSize)
	assert.Equal(t, DefaultSendTimeout, r.Config().SendTimeout)
}
