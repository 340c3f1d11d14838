package dataplane

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fabricfwd/internal/domain"
)

var (
	mac1 = domain.MAC{0, 0, 0, 0, 0, 1}
	mac2 = domain.MAC{0, 0, 0, 0, 0, 2}
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func flowRule(device string, in, out uint32, timeout time.Duration, app string) domain.FlowRule {
	return domain.FlowRule{
		Device:      domain.DeviceID(device),
		Match:       domain.Match{InPort: domain.PortNumber(in), EthSrc: mac1, EthDst: mac2},
		Output:      domain.PortNumber(out),
		Priority:    10,
		HardTimeout: timeout,
		AppID:       app,
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("rules land in their device table", func(t *testing.T) {
		f := New(WithSweepInterval(0))
		require.NoError(t, f.Apply(ctx, []domain.FlowRule{
			flowRule("D1", 1, 2, time.Minute, "app"),
			flowRule("D1", 2, 1, time.Minute, "app"),
			flowRule("D3", 1, 2, time.Minute, "app"),
		}))

		assert.Len(t, f.Flows("D1"), 2)
		assert.Len(t, f.Flows("D3"), 1)
		assert.Empty(t, f.Flows("D2"))
		assert.Equal(t, []domain.DeviceID{"D1", "D3"}, f.Devices())
		assert.Len(t, f.AllFlows(), 3)
	})

	t.Run("same match replaces the entry", func(t *testing.T) {
		f := New(WithSweepInterval(0))
		require.NoError(t, f.Apply(ctx, []domain.FlowRule{flowRule("D1", 1, 2, time.Minute, "app")}))
		require.NoError(t, f.Apply(ctx, []domain.FlowRule{flowRule("D1", 1, 5, time.Minute, "app")}))

		flows := f.Flows("D1")
		require.Len(t, flows, 1)
		assert.Equal(t, domain.PortNumber(5), flows[0].Rule.Output)
	})

	t.Run("hard timeout expires the entry", func(t *testing.T) {
		f := New(WithSweepInterval(0))
		require.NoError(t, f.Apply(ctx, []domain.FlowRule{
			flowRule("D1", 1, 2, 20*time.Millisecond, "app"),
			flowRule("D1", 2, 1, time.Minute, "app"),
		}))
		require.Len(t, f.Flows("D1"), 2)

		assert.Eventually(t, func() bool {
			return len(f.Flows("D1")) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("rule without device is rejected", func(t *testing.T) {
		f := New(WithSweepInterval(0))
		err := f.Apply(ctx, []domain.FlowRule{
			flowRule("D1", 1, 2, time.Minute, "app"),
			flowRule("", 1, 2, time.Minute, "app"),
		})
		assert.Error(t, err)
		assert.Empty(t, f.AllFlows())
	})

	t.Run("cancelled context still installs", func(t *testing.T) {
		f := New(WithSweepInterval(0))
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.NoError(t, f.Apply(cctx, []domain.FlowRule{flowRule("D1", 1, 2, time.Minute, "app")}))
		assert.Len(t, f.Flows("D1"), 1)

		pkt := f.NewPacket(domain.NewConnectPoint("D1", 1), make([]byte, 60))
		require.NoError(t, pkt.PacketOut(cctx, 2))
		assert.Len(t, f.PacketOuts(), 1)
	})
}

func TestRemoveApp(t *testing.T) {
	f := New(WithSweepInterval(0))
	require.NoError(t, f.Apply(context.Background(), []domain.FlowRule{
		flowRule("D1", 1, 2, time.Minute, "fabricfwd"),
		flowRule("D2", 1, 2, time.Minute, "fabricfwd"),
		flowRule("D2", 3, 4, time.Minute, "other"),
	}))

	assert.Equal(t, 2, f.RemoveApp("fabricfwd"))
	flows := f.AllFlows()
	require.Len(t, flows, 1)
	assert.Equal(t, "other", flows[0].Rule.AppID)
	assert.Zero(t, f.RemoveApp("fabricfwd"))
}

func TestPacketOuts(t *testing.T) {
	f := New(WithSweepInterval(0), WithPacketOutHistory(3))
	ctx := context.Background()
	pkt := f.NewPacket(domain.NewConnectPoint("D1", 1), make([]byte, 60))

	assert.Equal(t, domain.NewConnectPoint("D1", 1), pkt.ReceivedFrom())
	assert.Len(t, pkt.Data(), 60)
	assert.Empty(t, f.PacketOuts())

	for port := domain.PortNumber(1); port <= 4; port++ {
		require.NoError(t, pkt.PacketOut(ctx, port))
	}

	outs := f.PacketOuts()
	require.Len(t, outs, 3)
	assert.Equal(t, domain.PortNumber(2), outs[0].Port)
	assert.Equal(t, domain.PortNumber(4), outs[2].Port)
	assert.Equal(t, domain.DeviceID("D1"), outs[0].Device)
	assert.Equal(t, 60, outs[0].Size)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit sweep purges expired entries", func(t *testing.T) {
		f := New(WithSweepInterval(0))
		require.NoError(t, f.Apply(ctx, []domain.FlowRule{
			flowRule("D1", 1, 2, time.Millisecond, "app"),
			flowRule("D1", 2, 1, time.Minute, "app"),
		}))
		time.Sleep(5 * time.Millisecond)

		f.Sweep()
		assert.Equal(t, 1, f.table("D1").ItemCount())
	})

	t.Run("apply sweeps once the interval elapsed", func(t *testing.T) {
		f := New(WithSweepInterval(time.Millisecond))
		require.NoError(t, f.Apply(ctx, []domain.FlowRule{flowRule("D1", 1, 2, time.Millisecond, "app")}))
		time.Sleep(5 * time.Millisecond)

		require.NoError(t, f.Apply(ctx, []domain.FlowRule{flowRule("D2", 1, 2, time.Minute, "app")}))
		assert.Zero(t, f.table("D1").ItemCount())
	})
}
