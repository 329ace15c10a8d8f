// Package broadcast 实现主题洪泛协议核心
//
// 协议标识: /dep2p/broadcast/1.0.0
//
// # 架构定位
//
// - 架构层: Protocol Layer
// - 公共接口: pkg/interfaces/broadcast.go
// - 基础类型: pkg/types
// - 依赖: 无其他内部模块（传输、复用、发现均为外部协作者）
//
// # 核心功能
//
// broadcast 提供以下核心功能:
//
//  1. 订阅簿记 - 本地订阅集合与节点↔主题双向索引
//  2. 生命周期钩子 - 连接建立/断开边沿上的索引维护与订阅通告
//  3. 洪泛决策 - 对每次本地调用/入站消息计算受通知节点集合
//  4. 出站队列 - 串行化全部宿主可见效果的 FIFO
//  5. 线上编解码 - varint 长度前缀帧（kind + topic + payload）
//
// 协议是"向已知订阅者单跳洪泛"原语：不去重、不中继、不维护 Mesh，
// 多跳扩散由应用层自行决定。
//
// # 使用示例
//
//	// 创建路由器
//	router := broadcast.NewRouter()
//
//	// 声明订阅并发布
//	topic := types.TopicFromString("room/general")
//	router.Subscribe(topic)
//	router.Publish(topic, []byte("hello"))
//
//	// 宿主驱动循环
//	for {
//	    act, ok := router.Poll()
//	    if !ok {
//	        break
//	    }
//	    switch a := act.(type) {
//	    case types.ActionNotifyPeer:
//	        send(a.Peer, a.Message) // 宿主的每连接发送机制
//	    case types.ActionEmitEvent:
//	        deliver(a.Event) // 上交应用层
//	    }
//	}
//
// # 并发模型
//
// 单线程协作式：宿主在单一 goroutine 中驱动，路由器不加内部锁，
// 所有方法同步执行、立即返回、从不阻塞。
package broadcast
