// Package broadcast 实现主题洪泛协议核心
package broadcast

import (
	"context"

	"go.uber.org/fx"

	pkgif "github.com/dep2p/go-broadcast/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Router pkgif.Router
}

// Module 返回 Fx 模块
func Module(opts ...Option) fx.Option {
	return fx.Module("broadcast",
		fx.Provide(func() Result {
			return ProvideRouter(opts...)
		}),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideRouter 提供 Router 实例
func ProvideRouter(opts ...Option) Result {
	return Result{
		Router: NewRouter(opts...),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC     fx.Lifecycle
	Router pkgif.Router
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// 路由器没有后台任务，连接事件到来前保持空索引
			logger.Info("broadcast 路由器已就绪")
			return nil
		},
		OnStop: func(_ context.Context) error {
			// 索引与队列随进程丢弃，无需持久化
			logger.Info("broadcast 路由器已停止",
				"pending", input.Router.PendingActions())
			return nil
		},
	})
}
