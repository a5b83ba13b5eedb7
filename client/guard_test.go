package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardSingleGeneration(t *testing.T) {
	var g Guard
	ctx, commit := g.Start(context.Background())

	require.NoError(t, ctx.Err())
	assert.True(t, commit(), "sole in-flight generation must commit")
}

func TestGuardNewerGenerationCancelsOlder(t *testing.T) {
	var g Guard
	ctx1, commit1 := g.Start(context.Background())
	ctx2, commit2 := g.Start(context.Background())

	assert.ErrorIs(t, ctx1.Err(), context.Canceled, "starting a new request cancels the previous one")
	require.NoError(t, ctx2.Err())

	assert.False(t, commit1(), "stale results must be dropped")
	assert.True(t, commit2())
}

func TestGuardStop(t *testing.T) {
	var g Guard
	ctx, commit := g.Start(context.Background())

	g.Stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, commit(), "nothing commits after Stop")
}

func TestGuardRestartsAfterStop(t *testing.T) {
	var g Guard
	g.Start(context.Background())
	g.Stop()

	ctx, commit := g.Start(context.Background())
	require.NoError(t, ctx.Err())
	assert.True(t, commit(), "a fresh generation after Stop is live again")
}

func TestGuardStopIdempotent(t *testing.T) {
	var g Guard
	g.Stop()
	g.Stop()

	_, commit := g.Start(context.Background())
	assert.True(t, commit())
}
