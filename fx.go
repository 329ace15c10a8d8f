package broadcast

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	protocol "github.com/dep2p/go-broadcast/internal/protocol/broadcast"
)

// ════════════════════════════════════════════════════════════════════════════
//                              Fx 模块聚合
// ════════════════════════════════════════════════════════════════════════════

// Module 返回协议核心的 Fx 模块
//
// 向容器提供 interfaces.Router，宿主应用把它和自己的传输、连接
// 管理模块拼装在同一个 Fx App 里。
func Module(opts ...Option) fx.Option {
	return protocol.Module(opts...)
}

// NewApp 构建独立运行的 Fx App
//
// 适合示例与测试场景：只装载协议核心模块，并禁用 Fx 自身的日志
// 输出以免干扰用户日志。
func NewApp(opts ...Option) *fx.App {
	return fx.New(
		Module(opts...),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)
}
