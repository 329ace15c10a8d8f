package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-broadcast/pkg/interfaces"
	"github.com/dep2p/go-broadcast/pkg/types"
)

func TestModuleProvidesRouter(t *testing.T) {
	var router interfaces.Router
	app := fx.New(
		fx.NopLogger,
		Module(WithMaxMessageSize(4096)),
		fx.Populate(&router),
	)
	require.NoError(t, app.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx))
	defer func() {
		require.NoError(t, app.Stop(ctx))
	}()

	require.NotNil(t, router)
	assert.Empty(t, router.Subscribed())

	topic := types.TopicFromString("room/general")
	router.Subscribe(topic)
	assert.Equal(t, []types.Topic{topic}, router.Subscribed())
}

func TestProvideRouterAppliesOptions(t *testing.T) {
	res := ProvideRouter(WithSendTimeout(3 * time.Second))
	r, ok := res.Router.(*Router)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, r.Config().SendTimeout)
	assert.Equal(t, DefaultMaxMessageSize, r.Config().MaxMessageSize)
}
