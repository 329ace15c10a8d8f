// Package broadcast 实现主题洪泛协议核心
package broadcast

// ProtocolID 协议标识
//
// 宿主用它为本协议注册流处理器并在多路复用层协商。
const ProtocolID = "/dep2p/broadcast/1.0.0"
