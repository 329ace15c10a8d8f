// Package broadcast 实现主题洪泛协议核心
package broadcast

import "time"

// 默认配置值
const (
	// DefaultMaxMessageSize 默认最大消息大小 (1MB)
	DefaultMaxMessageSize = 1 << 20

	// DefaultSendTimeout 默认单条消息发送超时
	DefaultSendTimeout = 10 * time.Second
)

// Config 洪泛协议配置
//
// 洪泛决策本身不读取这些字段：MaxMessageSize 由编解码层使用，
// SendTimeout 原样透传给宿主的每连接发送机制。
type Config struct {
	// MaxMessageSize 最大消息大小（kind + topic + payload 的字节数）
	MaxMessageSize int

	// SendTimeout 单条消息发送超时（透传给宿主，核心不解释）
	SendTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		MaxMessageSize: DefaultMaxMessageSize,
		SendTimeout:    DefaultSendTimeout,
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithMaxMessageSize 设置最大消息大小
func WithMaxMessageSize(size int) Option {
	return func(c *Config) {
		c.MaxMessageSize = size
	}
}

// WithSendTimeout 设置单条消息发送超时
func WithSendTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.SendTimeout = timeout
	}
}
