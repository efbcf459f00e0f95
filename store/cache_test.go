package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingStore struct {
	data map[string]string
	gets int
}

func (c *countingStore) Get(_ context.Context, key string) (string, bool) {
	c.gets++
	v, ok := c.data[key]
	return v, ok
}

func (c *countingStore) Set(_ context.Context, key string, value string) {
	c.data[key] = value
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(time.Minute)

	_, ok := m.Get(ctx, "Qm1")
	assert.False(t, ok)

	m.Set(ctx, "Qm1", `{"title":"a"}`)
	v, ok := m.Get(ctx, "Qm1")
	assert.True(t, ok)
	assert.Equal(t, `{"title":"a"}`, v)

	m.Delete("Qm1")
	_, ok = m.Get(ctx, "Qm1")
	assert.False(t, ok)
}

func TestTiered(t *testing.T) {
	ctx := context.Background()
	local := NewMemoryStore(time.Minute)
	shared := &countingStore{data: map[string]string{"Qm2": "shared"}}
	tiered := Tiered{Local: local, Shared: shared}

	v, ok := tiered.Get(ctx, "Qm2")
	assert.True(t, ok)
	assert.Equal(t, "shared", v)

	// second read is served locally
	_, _ = tiered.Get(ctx, "Qm2")
	assert.Equal(t, 1, shared.gets)

	tiered.Set(ctx, "Qm3", "both")
	assert.Equal(t, "both", shared.data["Qm3"])
	v, _ = local.Get(ctx, "Qm3")
	assert.Equal(t, "both", v)
}
