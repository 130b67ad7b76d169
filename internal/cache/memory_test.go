package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryProviderRoundTrip(t *testing.T) {
	p := NewMemoryProvider("test")
	defer p.Close()
	ctx := context.Background()

	_, err := p.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.Set(ctx, "k", []byte("value"), time.Minute))
	got, err := p.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, p.Delete(ctx, "k"))
	_, err = p.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProviderTTL(t *testing.T) {
	p := NewMemoryProvider("test")
	defer p.Close()
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "k", []byte("v"), 20*time.Millisecond))

	_, err := p.Get(ctx, "k")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := p.Get(ctx, "k")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryProviderNoTTL(t *testing.T) {
	p := NewMemoryProvider("test")
	defer p.Close()
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "k", []byte("v"), 0))
	time.Sleep(30 * time.Millisecond)

	_, err := p.Get(ctx, "k")
	assert.NoError(t, err)
}
