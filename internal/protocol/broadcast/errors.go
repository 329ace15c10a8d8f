// Package broadcast 实现主题洪泛协议核心
package broadcast

import "errors"

// 错误定义
var (
	// ErrMessageTooLarge 消息超过配置的大小上限
	ErrMessageTooLarge = errors.New("broadcast: message too large")

	// ErrMessageTruncated 帧不完整
	ErrMessageTruncated = errors.New("broadcast: message truncated")

	// ErrInvalidMessage 无法解析的消息（未知变体或长度不符）
	ErrInvalidMessage = errors.New("broadcast: invalid message")
)
