// Package broadcast 提供基于主题的洪泛广播协议核心
//
// go-broadcast 是一个传输层无关的发布/订阅核心：维护本地订阅集合与
// 对端订阅的双向索引，针对每次输入产生确定性的出站动作序列，由宿主
// 网络栈负责实际收发。
//
// # 核心概念
//
// go-broadcast 围绕三个核心概念构建：
//
//   - Topic: 32 字节主题标识，由名称经 BLAKE3 哈希派生
//   - Router: 协议核心，订阅索引 + 扩散引擎 + 出站队列
//   - Action: 出站动作，NotifyPeer（发消息给对端）或 EmitEvent（上交应用事件）
//
// # 快速开始
//
//	import "github.com/dep2p/go-broadcast"
//
//	// 1. 创建路由器
//	router := broadcast.New()
//
//	// 2. 宿主报告连接边沿、投递入站消息
//	router.HandleConnectionEstablished(peer, true)
//	router.HandleMessage(peer, msg)
//
//	// 3. 本地操作
//	topic := broadcast.NewTopic([]byte("room/general"))
//	router.Subscribe(topic)
//	router.Publish(topic, []byte("hello"))
//
//	// 4. 排空出站队列并执行动作
//	for {
//	    act, ok := router.Poll()
//	    if !ok {
//	        break
//	    }
//	    switch a := act.(type) {
//	    case broadcast.ActionNotifyPeer:
//	        // 经由宿主连接把 a.Message 发给 a.Peer
//	    case broadcast.ActionEmitEvent:
//	        // 把 a.Event 交给应用层
//	    }
//	}
//
// # 驱动模型
//
// Router 不做内部加锁，由单个宿主协程独占驱动：每投递一个输入
// （本地调用、连接边沿或入站消息）之后排空一次队列。传输、连接
// 管理、流复用与加密全部由宿主负责，本库只做协议决策。
//
// # 文件组织
//
//	doc.go        - 包文档
//	broadcast.go  - 类型再导出与构造入口
//	fx.go         - Fx 模块聚合
//	pkg/types     - PeerID、Topic、Message、事件与动作
//	pkg/interfaces - Router 接口契约
//	internal/protocol/broadcast - 协议实现与线上编解码
package broadcast
