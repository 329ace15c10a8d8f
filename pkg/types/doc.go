// Package types 定义 go-broadcast 的基础类型
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 类型清单
//
//   - ids.go      - PeerID（节点标识，Base58 编码）
//   - topic.go    - Topic（主题标识，BLAKE3 派生）
//   - message.go  - Message / MessageKind（三变体线上消息）
//   - events.go   - BroadcastEvent / Action（应用事件与出站动作）
//
// # 设计约束
//
//   - 值语义：所有类型按值复制，复制开销固定且很小
//   - 可比较：PeerID 与 Topic 可直接用作 map 键
//   - 不可变：创建后不修改；Broadcast 载荷的底层数组在入队后只读
package types
