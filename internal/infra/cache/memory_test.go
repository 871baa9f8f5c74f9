package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLedger_ClaimOnce(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	ok, err := l.Claim(ctx, "tenant/TRG1/L1/100", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Claim(ctx, "tenant/TRG1/L1/100", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Claim(ctx, "tenant/TRG1/L2/100", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLedger_ExpiredClaimCanBeRetaken(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLedger()
	l.now = func() time.Time { return now }

	ok, _ := l.Claim(context.Background(), "k", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = l.Claim(context.Background(), "k", time.Minute)
	assert.True(t, ok)
}
