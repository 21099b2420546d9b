package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmrpc/tmrpc/client"
	"github.com/tmrpc/tmrpc/coretypes"
)

// statusStub returns a scripted sequence of status results.
type statusStub struct {
	heights []int64
	nodeID  string
	err     error
	calls   int
}

func (s *statusStub) Status(ctx context.Context) (*coretypes.ResultStatus, error) {
	if s.err != nil {
		return nil, s.err
	}
	h := s.heights[s.calls]
	if s.calls < len(s.heights)-1 {
		s.calls++
	}
	return &coretypes.ResultStatus{
		NodeInfo: coretypes.NodeInfo{NodeID: s.nodeID},
		SyncInfo: coretypes.SyncInfo{LatestBlockHeight: h},
	}, nil
}

func TestCanConnect(t *testing.T) {
	ctx := context.Background()

	up := &statusStub{heights: []int64{1}, nodeID: "deadbeef"}
	assert.True(t, client.CanConnect(ctx, up))

	down := &statusStub{err: errors.New("connection refused")}
	assert.False(t, client.CanConnect(ctx, down))

	// a reply without node info does not count as connected
	empty := &statusStub{heights: []int64{1}}
	assert.False(t, client.CanConnect(ctx, empty))
}

func TestWaitForHeight(t *testing.T) {
	ctx := context.Background()

	// no waiting: the node is already past the height
	noWait := func(delta int64) error {
		if delta > 0 {
			return errors.New("should not have waited")
		}
		return nil
	}
	node := &statusStub{heights: []int64{50}}
	require.NoError(t, client.WaitForHeight(ctx, node, 40, noWait))

	// the node catches up between polls
	catching := &statusStub{heights: []int64{38, 39, 40}}
	countWaits := 0
	counter := func(delta int64) error {
		if delta > 0 {
			countWaits++
		}
		return nil
	}
	require.NoError(t, client.WaitForHeight(ctx, catching, 40, counter))
	assert.Equal(t, 2, countWaits)

	// status errors propagate
	broken := &statusStub{err: errors.New("connection refused")}
	require.Error(t, client.WaitForHeight(ctx, broken, 40, noWait))

	// the waiter can abort
	stuck := &statusStub{heights: []int64{1}}
	err := client.WaitForHeight(ctx, stuck, 100, client.DefaultWaitStrategy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborting")
}
